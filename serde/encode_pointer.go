package serde

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"

	"objtree/internal/diagnostic"
	"objtree/internal/metrics"
	"objtree/options"
	"objtree/primitive"
	"objtree/tracker"
)

// ownership reads the pointer related tags of a member.
func ownership(tags options.TagEnum) (owned, shared bool) {
	return !tags.Has(options.TagNotOwned), tags.Has(options.TagShared)
}

func (e *encoder) null(owned bool) {
	e.attr(AttrIsOwned, primitive.Bool(owned))
	e.attr(AttrInstanceID, primitive.Uint64(0))
	e.ctx.metrics.CountPointer(metrics.DirectionWrite, metrics.PointerNil)
}

// track claims the instance behind the non-nil pointer p and writes the
// identity attributes. It reports whether the body has to be written here.
func (e *encoder) track(p reflect.Value, typeName string, owned, shared bool) (bool, error) {
	rec, err := e.serial.Track(tracker.KeyOf(p), owned, shared)
	if errors.Is(err, tracker.ErrZeroSize) {
		return false, errors.WithSecondaryError(e.errorf(ErrUnsupported, "%v", err), err)
	}

	if err != nil {
		return false, e.wrap(err)
	}

	// later owners of a shared instance only link to it
	writeBody := owned && (!shared || rec.Owners == 1)

	e.attr(AttrIsOwned, primitive.Bool(writeBody))
	if shared {
		e.attr(AttrIsShared, primitive.Bool(true))
	}

	e.attr(AttrInstanceID, primitive.Uint64(rec.ID))
	e.attr(AttrTypeName, primitive.String(typeName))

	switch {
	case !writeBody:
		e.ctx.metrics.CountPointer(metrics.DirectionWrite, metrics.PointerLink)
		if shared {
			e.info(diagnostic.CodeSharedLink, fmt.Sprintf("instance %d is written by its first shared owner", rec.ID), typeName)
		}
	case shared:
		e.ctx.metrics.CountPointer(metrics.DirectionWrite, metrics.PointerShared)
	default:
		e.ctx.metrics.CountPointer(metrics.DirectionWrite, metrics.PointerOwned)
	}

	return writeBody, nil
}

func (e *encoder) pointer(v reflect.Value, tags options.TagEnum) error {
	owned, shared := ownership(tags)
	if v.IsNil() {
		e.null(owned)
		return nil
	}

	writeBody, err := e.track(v, e.ctx.TypeName(v.Type().Elem()), owned, shared)
	if err != nil || !writeBody {
		return err
	}

	return e.WritePointee(v.Elem())
}

// polymorphic writes an interface value through the caster of its dynamic type.
func (e *encoder) polymorphic(v reflect.Value, tags options.TagEnum) error {
	owned, shared := ownership(tags)
	if v.IsNil() || (v.Elem().Kind() == reflect.Pointer && v.Elem().IsNil()) {
		e.null(owned)
		return nil
	}

	dyn := v.Elem()
	c, ok := e.ctx.casters.Get(v.Type(), dyn.Type())
	if !ok {
		pointee := dyn.Type()
		if pointee.Kind() == reflect.Pointer {
			pointee = pointee.Elem()
		}

		return e.missingCaster(v.Type(), e.ctx.TypeName(pointee))
	}

	if dyn.Kind() != reflect.Pointer {
		if !owned {
			return e.errorf(ErrUnsupported, "%s is held by value and cannot be linked", c.DerivedName)
		}

		e.attr(AttrIsOwned, primitive.Bool(true))
		e.attr(AttrTypeName, primitive.String(c.DerivedName))
		e.ctx.metrics.CountPointer(metrics.DirectionWrite, metrics.PointerOwned)

		return c.Serialize(e, v)
	}

	writeBody, err := e.track(dyn, c.DerivedName, owned, shared)
	if err != nil || !writeBody {
		return err
	}

	return c.Serialize(e, v)
}
