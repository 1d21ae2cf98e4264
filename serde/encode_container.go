package serde

import (
	"reflect"
	"slices"

	"objtree/options"
	"objtree/primitive"
	"objtree/walker"
)

// elementTags are the member tags that carry over to container elements.
const elementTags = options.TagNotOwned | options.TagShared

func (e *encoder) sequence(v reflect.Value, tags options.TagEnum) error {
	n := v.Len()

	e.attr(AttrElementCount, primitive.Uint32(uint32(n)))
	e.attr(AttrElementType, primitive.String(e.ctx.TypeName(v.Type().Elem())))

	for i := 0; i < n; i++ {
		if err := e.value(elementStem.name(i), v.Index(i), tags&elementTags); err != nil {
			return err
		}
	}

	return nil
}

type mapEntry struct {
	key, value reflect.Value
	order      primitive.Value
}

func (e *encoder) associative(v reflect.Value, tags options.TagEnum) error {
	t := v.Type()

	e.attr(AttrElementCount, primitive.Uint32(uint32(v.Len())))
	e.attr(AttrKeyType, primitive.String(e.ctx.TypeName(t.Key())))
	e.attr(AttrValueType, primitive.String(e.ctx.TypeName(t.Elem())))

	entries, err := e.entries(v)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		if err := e.entry(i, entry, tags&elementTags); err != nil {
			return err
		}
	}

	return nil
}

// entries lists the map content, sorted by key when keys are scalars.
func (e *encoder) entries(v reflect.Value) ([]mapEntry, error) {
	scalarKeys := e.ctx.category(v.Type().Key()) == CategoryScalar

	out := make([]mapEntry, 0, v.Len())
	for it := v.MapRange(); it.Next(); {
		entry := mapEntry{key: addressable(it.Key()), value: addressable(it.Value())}

		if scalarKeys {
			order, err := primitive.FromReflect(entry.key)
			if err != nil {
				return nil, e.wrap(err)
			}

			entry.order = order
		}

		out = append(out, entry)
	}

	if scalarKeys {
		slices.SortFunc(out, func(a, b mapEntry) int { return primitive.Compare(a.order, b.order) })
	}

	return out, nil
}

func (e *encoder) entry(i int, entry mapEntry, tags options.TagEnum) error {
	name := elementStem.name(i)

	scope, ok := walker.NewChild(e.w, name, options.TagNone)
	if !ok {
		e.collision(name)
		return nil
	}
	defer scope.Release()

	e.enter(name)
	defer e.leave()

	if err := e.value(NodeKey, entry.key, options.TagNone); err != nil {
		return err
	}

	return e.value(NodeValue, entry.value, tags)
}
