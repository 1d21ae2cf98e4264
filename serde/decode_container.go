package serde

import (
	"reflect"

	"objtree/options"
	"objtree/walker"
)

func (d *decoder) count() (int, error) {
	n, ok := walker.Get[uint32](d.w, AttrElementCount)
	if !ok {
		return 0, d.errorf(ErrMalformed, "missing %s", AttrElementCount)
	}

	return int(n), nil
}

// expect verifies an optional type name attribute.
func (d *decoder) expect(attr string, t reflect.Type) error {
	got, ok := walker.Get[string](d.w, attr)
	if !ok {
		return nil
	}

	if want := d.ctx.TypeName(t); got != want {
		return d.errorf(ErrTypeMismatch, "%s: expected %q, got %q", attr, want, got)
	}

	return nil
}

func (d *decoder) sequence(dst reflect.Value, tags options.TagEnum) error {
	n, err := d.count()
	if err != nil {
		return err
	}

	if err := d.expect(AttrElementType, dst.Type().Elem()); err != nil {
		return err
	}

	if dst.Kind() == reflect.Array {
		if n > dst.Len() {
			return d.errorf(ErrTypeMismatch, "%d elements do not fit %s", n, dst.Type())
		}
	} else if n == 0 {
		dst.Set(reflect.Zero(dst.Type()))
	} else {
		dst.Set(reflect.MakeSlice(dst.Type(), n, n))
	}

	for i := 0; i < n; i++ {
		if err := d.value(elementStem.name(i), dst.Index(i), tags&elementTags); err != nil {
			return err
		}
	}

	return nil
}

func (d *decoder) associative(dst reflect.Value, tags options.TagEnum) error {
	n, err := d.count()
	if err != nil {
		return err
	}

	t := dst.Type()
	if err := d.expect(AttrKeyType, t.Key()); err != nil {
		return err
	}

	if err := d.expect(AttrValueType, t.Elem()); err != nil {
		return err
	}

	if n == 0 {
		dst.Set(reflect.Zero(t))
		return nil
	}

	m := reflect.MakeMapWithSize(t, n)
	for i := 0; i < n; i++ {
		if err := d.entry(i, m, tags&elementTags); err != nil {
			return err
		}
	}

	dst.Set(m)
	return nil
}

func (d *decoder) entry(i int, m reflect.Value, tags options.TagEnum) error {
	name := elementStem.name(i)

	scope, ok := walker.Child(d.w, name)
	if !ok {
		return d.errorf(ErrMalformed, "missing entry %s", name)
	}
	defer scope.Release()

	d.enter(name)
	defer d.leave()

	t := m.Type()
	if !d.present(NodeKey, t.Key()) {
		return d.errorf(ErrMalformed, "entry without %s", NodeKey)
	}

	key := reflect.New(t.Key()).Elem()
	if err := d.value(NodeKey, key, options.TagNone); err != nil {
		return err
	}

	if m.MapIndex(key).IsValid() {
		return d.errorf(ErrMalformed, "duplicate key %v", key)
	}

	val := reflect.New(t.Elem()).Elem()
	before := d.resolver.Deferred()
	if err := d.value(NodeValue, val, tags); err != nil {
		return err
	}

	m.SetMapIndex(key, val)

	if d.resolver.Deferred() > before {
		d.recommits = append(d.recommits, func() error {
			m.SetMapIndex(key, val)
			return nil
		})
	}

	return nil
}
