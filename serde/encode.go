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
	"objtree/walker"
)

type encoder struct {
	pass
	serial *tracker.Serial
}

// Serialize writes v into the node under w and renames that node to name.
// A scalar v is written as the attribute name of that node instead.
//
// When v is a pointer to a struct, the struct is written in place and its
// address becomes the first identity of the pass, so links back to the root
// resolve on reading.
func Serialize(ctx *Context, w walker.Walker, name string, v any, opts ...PassOption) (err error) {
	cfg := newPassConfig(opts)
	e := &encoder{
		pass:   newPass(ctx, w, cfg, metrics.DirectionWrite),
		serial: tracker.NewSerial(),
	}

	defer func() { e.finish(err) }()

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return errors.Wrap(ErrUnsupported, "nil value")
	}

	var root reflect.Value
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errors.Wrapf(ErrUnsupported, "nil %s", rv.Type())
		}

		root, rv = rv, rv.Elem()
	} else {
		rv = addressable(rv)
	}

	if e.skipped(cfg.tags) {
		return nil
	}

	cat, err := e.category(rv.Type())
	if err != nil {
		return err
	}

	if cat == CategoryScalar {
		return e.scalar(name, rv)
	}

	w.SetName(name)
	e.enter(name)

	if root.IsValid() && cat == CategoryClass {
		rec, err := e.serial.Track(tracker.KeyOf(root), true, false)
		if err != nil {
			return e.wrap(err)
		}

		e.attr(AttrInstanceID, primitive.Uint64(rec.ID))
	}

	if err := e.content(rv, cat, cfg.tags); err != nil {
		return err
	}

	for _, rec := range e.serial.Unowned() {
		e.report.AddWarning(diagnostic.CodeUnownedLink,
			fmt.Sprintf("instance %d is only referenced and will dangle when read", rec.ID), "", "")
	}

	return nil
}

// value writes v as the member name of the current node.
func (e *encoder) value(name string, v reflect.Value, tags options.TagEnum) error {
	if e.skipped(tags) || tags.Has(options.TagDeprecated) {
		return nil
	}

	cat, err := e.category(v.Type())
	if err != nil {
		return err
	}

	if cat == CategoryScalar {
		return e.scalar(name, v)
	}

	scope, ok := walker.NewChild(e.w, name, tags)
	if !ok {
		e.collision(name)
		return nil
	}
	defer scope.Release()

	e.enter(name)
	defer e.leave()

	return e.content(v, cat, tags)
}

func (e *encoder) scalar(name string, v reflect.Value) error {
	val, err := primitive.FromReflect(v)
	if err != nil {
		return e.wrap(err)
	}

	e.attr(name, val)
	return nil
}

// content writes the body of a non-scalar into the current node.
func (e *encoder) content(v reflect.Value, cat CategoryEnum, tags options.TagEnum) error {
	switch cat {
	case CategorySequence:
		return e.sequence(v, tags)
	case CategoryAssociative:
		return e.associative(v, tags)
	case CategoryClass:
		return e.class(addressable(v))
	case CategoryPointer:
		return e.pointer(v, tags)
	case CategoryInterface:
		return e.polymorphic(v, tags)
	}

	return e.errorf(ErrUnsupported, "%s as %s", v.Type(), cat)
}

func (e *encoder) class(v reflect.Value) error {
	tbl, err := e.ctx.members.Lookup(v.Type())
	if err != nil {
		return e.wrap(err)
	}

	if tbl == nil {
		e.unregistered(v.Type())
		return nil
	}

	if !tbl.Anonymous() {
		// a polymorphic holder may have named the node already
		if !e.w.HasAttribute(AttrTypeName) {
			e.attr(AttrTypeName, primitive.String(tbl.TypeName))
		}

		e.attr(AttrVersion, primitive.Uint32(tbl.Version))
	}

	for _, m := range tbl.Members {
		if e.skipped(m.Tags) || m.Tags.Has(options.TagDeprecated) {
			continue
		}

		fv, err := m.Get(v)
		if err != nil {
			return e.wrap(err)
		}

		if err := e.value(m.Name, fv, m.Tags); err != nil {
			return err
		}
	}

	return nil
}

// WritePointee writes the body of an owned instance into the current node.
func (e *encoder) WritePointee(v reflect.Value) error {
	cat, err := e.category(v.Type())
	if err != nil {
		return err
	}

	switch cat {
	case CategoryScalar:
		return e.scalar(NodeValue, v)
	case CategoryPointer, CategoryInterface:
		return e.value(NodeValue, v, options.TagNone)
	}

	return e.content(v, cat, options.TagNone)
}

// addressable returns v itself when it can be addressed, or an addressable copy.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}

	tmp := reflect.New(v.Type()).Elem()
	tmp.Set(v)
	return tmp
}
