package serde

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"objtree/internal/diagnostic"
	"objtree/internal/metrics"
	"objtree/member"
	"objtree/options"
	"objtree/primitive"
	"objtree/tracker"
	"objtree/walker"
)

type decoder struct {
	pass
	resolver *tracker.Resolver
	// recommits store values again once their pending links were patched,
	// for destinations that were filled through a copy
	recommits []func() error
}

// Deserialize reads into the value dst points to. Non-scalars are read from
// the node under w when it is called name, otherwise from its child name.
// Scalars are read from the attribute name.
//
// Every reference must resolve by the end of the pass; the unresolved ones are
// reported together as ErrDanglingReference. The graph built so far is left in
// dst either way, but after an error it must not be trusted.
func Deserialize(ctx *Context, w walker.Walker, name string, dst any, opts ...PassOption) (err error) {
	cfg := newPassConfig(opts)
	d := &decoder{
		pass:     newPass(ctx, w, cfg, metrics.DirectionRead),
		resolver: tracker.NewResolver(),
	}

	defer func() { d.finish(err) }()

	rv := reflect.ValueOf(dst)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Wrapf(ErrInvalidDestination, "got %T", dst)
	}

	if d.skipped(cfg.tags) || cfg.tags.Has(options.TagGenerated) {
		return nil
	}

	elem := rv.Elem()
	cat, err := d.category(elem.Type())
	if err != nil {
		return err
	}

	if cat == CategoryScalar {
		return d.scalar(name, elem, cfg.tags)
	}

	if w.Name() != name {
		scope, ok := walker.Child(w, name)
		if !ok {
			return errors.Wrapf(ErrMalformed, "node %q not found under %q", name, w.Name())
		}
		defer scope.Release()
	}

	d.enter(name)

	if err := d.content(elem, cat, cfg.tags); err != nil {
		return err
	}

	if cat == CategoryClass {
		if id, ok := walker.Get[uint64](w, AttrInstanceID); ok && id != 0 {
			if err := d.resolve(id, ctx.TypeName(elem.Type()), rv, false); err != nil {
				return err
			}
		}
	}

	for _, commit := range d.recommits {
		if err := commit(); err != nil {
			return err
		}
	}

	return d.resolver.Close()
}

// value reads the member name of the current node into dst. An absent scalar
// attribute leaves dst as it is; an absent child node is ErrMalformed.
func (d *decoder) value(name string, dst reflect.Value, tags options.TagEnum) error {
	if d.skipped(tags) || tags.Has(options.TagGenerated) {
		return nil
	}

	cat, err := d.category(dst.Type())
	if err != nil {
		return err
	}

	if cat == CategoryScalar {
		return d.scalar(name, dst, tags)
	}

	scope, ok := walker.Child(d.w, name)
	if !ok {
		return d.absent(name, dst.Type(), tags)
	}
	defer scope.Release()

	d.enter(name)
	defer d.leave()

	if tags.Has(options.TagDeprecated) {
		d.deprecated(name)
	}

	return d.content(dst, cat, tags)
}

// absent handles a missing child node. Deprecated members are never written,
// so their absence is expected.
func (d *decoder) absent(name string, t reflect.Type, tags options.TagEnum) error {
	if tags.Has(options.TagDeprecated) {
		return nil
	}

	if !d.lenient {
		return d.errorf(ErrMalformed, "node %q not found", name)
	}

	d.warn(diagnostic.CodeMissingNode, fmt.Sprintf("node %q is absent, value left unchanged", name), t.String())
	return nil
}

func (d *decoder) scalar(name string, dst reflect.Value, tags options.TagEnum) error {
	val, ok := d.w.Value(name)
	if !ok {
		return nil
	}

	if tags.Has(options.TagDeprecated) {
		d.deprecated(name)
	}

	err := val.AssignTo(dst)
	if errors.Is(err, primitive.ErrKindMismatch) {
		d.warn(diagnostic.CodeKindMismatch, fmt.Sprintf("attribute %q: %v", name, err), dst.Type().String())
		return nil
	}

	return d.wrap(err)
}

func (d *decoder) deprecated(name string) {
	d.logger.Warn("deprecated member read", zap.String("member", name), zap.String("path", d.where()))
	d.warn(diagnostic.CodeDeprecated, fmt.Sprintf("deprecated member %q was read", name), "")
}

// present reports whether the current node holds the member name.
func (d *decoder) present(name string, t reflect.Type) bool {
	if d.ctx.category(t) == CategoryScalar {
		return d.w.HasAttribute(name)
	}

	scope, ok := walker.Child(d.w, name)
	scope.Release()

	return ok
}

func (d *decoder) content(dst reflect.Value, cat CategoryEnum, tags options.TagEnum) error {
	switch cat {
	case CategorySequence:
		return d.sequence(dst, tags)
	case CategoryAssociative:
		return d.associative(dst, tags)
	case CategoryClass:
		return d.class(dst)
	case CategoryPointer:
		return d.pointer(dst, tags)
	case CategoryInterface:
		return d.polymorphic(dst, tags)
	}

	return d.errorf(ErrUnsupported, "%s as %s", dst.Type(), cat)
}

func (d *decoder) class(dst reflect.Value) error {
	tbl, err := d.ctx.members.Lookup(dst.Type())
	if err != nil {
		return d.wrap(err)
	}

	if tbl == nil {
		d.unregistered(dst.Type())
		return nil
	}

	if !tbl.Anonymous() {
		if err := d.validate(tbl); err != nil {
			return err
		}
	}

	for _, m := range tbl.Members {
		if err := d.member(dst, m); err != nil {
			return err
		}
	}

	return nil
}

func (d *decoder) validate(tbl *member.Table) error {
	name, ok := walker.Get[string](d.w, AttrTypeName)
	if !ok {
		return d.errorf(ErrTypeMismatch, "missing %s, expected %q", AttrTypeName, tbl.TypeName)
	}

	if name != tbl.TypeName {
		return d.errorf(ErrTypeMismatch, "expected %q, got %q", tbl.TypeName, name)
	}

	version, ok := walker.Get[uint32](d.w, AttrVersion)
	if !ok {
		return d.errorf(ErrVersionMismatch, "%s: missing %s", tbl.TypeName, AttrVersion)
	}

	if version != tbl.Version {
		return d.errorf(ErrVersionMismatch, "%s: expected %d, got %d", tbl.TypeName, tbl.Version, version)
	}

	return nil
}

func (d *decoder) member(inst reflect.Value, m member.Member) error {
	if d.skipped(m.Tags) {
		return nil
	}

	if m.Tags.Has(options.TagGenerated) {
		if d.present(m.Name, m.Type()) {
			d.info(diagnostic.CodeGeneratedSkipped, fmt.Sprintf("generated member %q was not read", m.Name), "")
		}

		return nil
	}

	if m.Accessor.InPlace() {
		field, err := m.Get(inst)
		if err != nil {
			return d.wrap(err)
		}

		return d.value(m.Name, field, m.Tags)
	}

	if !d.present(m.Name, m.Type()) {
		if d.ctx.category(m.Type()) == CategoryScalar {
			return nil
		}

		return d.absent(m.Name, m.Type(), m.Tags)
	}

	tmp := reflect.New(m.Type()).Elem()
	if cur, err := m.Get(inst); err == nil {
		tmp.Set(cur)
	} else if !errors.Is(err, member.ErrAbsentGetter) {
		return d.wrap(err)
	}

	before := d.resolver.Deferred()
	if err := d.value(m.Name, tmp, m.Tags); err != nil {
		return err
	}

	if err := m.Set(inst, tmp); err != nil {
		return d.wrap(err)
	}

	if d.resolver.Deferred() > before {
		where := d.where()
		d.recommits = append(d.recommits, func() error {
			return errors.Wrapf(m.Set(inst, tmp), "%s", where)
		})
	}

	return nil
}

// ReadPointee fills a freshly allocated instance from the current node.
func (d *decoder) ReadPointee(dst reflect.Value) error {
	if ptr := dst.Addr(); ptr.Type().Implements(constructorType) {
		version, _ := walker.Get[uint32](d.w, AttrVersion)
		if err := ptr.Interface().(Constructor).Construct(version, d.w); err != nil {
			return d.wrap(err)
		}
	}

	cat, err := d.category(dst.Type())
	if err != nil {
		return err
	}

	switch cat {
	case CategoryScalar:
		return d.scalar(NodeValue, dst, options.TagNone)
	case CategoryPointer, CategoryInterface:
		return d.value(NodeValue, dst, options.TagNone)
	}

	return d.content(dst, cat, options.TagNone)
}
