package serde

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"objtree/internal/metrics"
	"objtree/options"
	"objtree/tracker"
	"objtree/walker"
)

// identity reads the attributes every pointer node carries.
func (d *decoder) identity() (id uint64, owned, shared bool, err error) {
	owned, ok := walker.Get[bool](d.w, AttrIsOwned)
	if !ok {
		return 0, false, false, d.errorf(ErrMalformed, "pointer node without %s", AttrIsOwned)
	}

	id, _ = walker.Get[uint64](d.w, AttrInstanceID)
	shared, _ = walker.Get[bool](d.w, AttrIsShared)

	return id, owned, shared, nil
}

// link registers dst as a reference to id, patched when the owner is read.
func (d *decoder) link(dst reflect.Value, id uint64, typeName string) error {
	d.ctx.metrics.CountPointer(metrics.DirectionRead, metrics.PointerLink)

	where := d.where()
	patch := func(instance reflect.Value) error {
		if !instance.Type().AssignableTo(dst.Type()) {
			return errors.Wrapf(ErrTypeMismatch, "%s: instance %d is %s, %s expected", where, id, instance.Type(), dst.Type())
		}

		dst.Set(instance)
		return nil
	}

	return d.wrapTracker(d.resolver.Refer(id, typeName, patch))
}

func (d *decoder) wrapTracker(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, tracker.ErrTypeConflict) {
		return errors.WithSecondaryError(d.errorf(ErrTypeMismatch, "%v", err), err)
	}

	return d.wrap(err)
}

func (d *decoder) resolve(id uint64, typeName string, instance reflect.Value, shared bool) error {
	if id == 0 {
		return nil
	}

	kind := metrics.PointerOwned
	if shared {
		kind = metrics.PointerShared
	}

	d.ctx.metrics.CountPointer(metrics.DirectionRead, kind)

	return d.wrapTracker(d.resolver.Resolve(id, typeName, instance, shared))
}

func (d *decoder) pointer(dst reflect.Value, tags options.TagEnum) error {
	id, owned, shared, err := d.identity()
	if err != nil {
		return err
	}

	if id == 0 {
		d.ctx.metrics.CountPointer(metrics.DirectionRead, metrics.PointerNil)
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	if !owned {
		typeName, _ := walker.Get[string](d.w, AttrTypeName)
		return d.link(dst, id, typeName)
	}

	p := reflect.New(dst.Type().Elem())
	if err := d.ReadPointee(p.Elem()); err != nil {
		return err
	}

	dst.Set(p)

	return d.resolve(id, d.ctx.TypeName(p.Type().Elem()), p, shared)
}

// polymorphic reads an interface value through the caster named by the node.
func (d *decoder) polymorphic(dst reflect.Value, tags options.TagEnum) error {
	id, owned, shared, err := d.identity()
	if err != nil {
		return err
	}

	typeName, named := walker.Get[string](d.w, AttrTypeName)
	if !named {
		d.ctx.metrics.CountPointer(metrics.DirectionRead, metrics.PointerNil)
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	if !owned {
		return d.link(dst, id, typeName)
	}

	c, ok := d.ctx.casters.GetByName(d.ctx.TypeName(dst.Type()), typeName)
	if !ok {
		return d.missingCaster(dst.Type(), typeName)
	}

	instance, err := c.Deserialize(d)
	if err != nil {
		return err
	}

	dst.Set(c.Upcast(instance))

	return d.resolve(id, typeName, instance, shared)
}
