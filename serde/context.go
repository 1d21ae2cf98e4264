package serde

import (
	"path"
	"reflect"
	"strconv"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"objtree/caster"
	"objtree/internal/metrics"
	"objtree/member"
	"objtree/primitive"
	"objtree/walker"
)

// Context owns the registries shared by every pass. Registration is safe for
// concurrent use; a single pass is not.
type Context struct {
	members    *member.Registry
	casters    *caster.Registry
	categories *xsync.MapOf[reflect.Type, CategoryEnum]

	logger    *zap.Logger
	metrics   *metrics.Metrics
	skipLocal bool
	auto      bool
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger passes write to. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithMetrics makes passes record into m. Without it nothing is recorded.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Context) { c.metrics = m }
}

// WithAutoDescribe lets unregistered structs be visited field by field as
// anonymous types, see member.FromStruct.
func WithAutoDescribe() Option {
	return func(c *Context) { c.auto = true }
}

// WithoutLocal drops members tagged Local in both directions.
func WithoutLocal() Option {
	return func(c *Context) { c.skipLocal = true }
}

// NewContext returns a Context with empty registries.
func NewContext(opts ...Option) *Context {
	c := &Context{
		casters:    caster.NewRegistry(),
		categories: xsync.NewMapOf[reflect.Type, CategoryEnum](),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	var memberOpts []member.Option
	if c.auto {
		memberOpts = append(memberOpts, member.WithAutoDescribe())
	}

	c.members = member.NewRegistry(memberOpts...)
	return c
}

// Members returns the member table registry.
func (c *Context) Members() *member.Registry {
	return c.members
}

// Casters returns the polymorphic caster registry.
func (c *Context) Casters() *caster.Registry {
	return c.casters
}

// Logger returns the logger passes derive theirs from.
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// Describe registers the member table provider of T.
func Describe[T any](c *Context, p member.Provider) {
	member.Register[T](c.members, p)
}

// RegisterCaster lets values of D be written and read through B. Both names
// are taken from the member tables, so describe the types first.
func RegisterCaster[B, D any](c *Context) error {
	bt, dt := reflect.TypeFor[B](), reflect.TypeFor[D]()

	pointee := dt
	if dt.Kind() == reflect.Pointer {
		pointee = dt.Elem()
	}

	cs, err := caster.Of(bt, dt, c.TypeName(bt), c.TypeName(pointee))
	if err != nil {
		return err
	}

	c.casters.Add(cs)
	c.logger.Debug("caster registered",
		zap.String("base", cs.BaseName),
		zap.String("derived", cs.DerivedName))

	return nil
}

// Constructor is implemented by pointer targets that initialize themselves
// from the node before their members are read. Construct must leave the
// cursor on the node it was given.
type Constructor interface {
	Construct(version uint32, w walker.Walker) error
}

var constructorType = reflect.TypeFor[Constructor]()

func (c *Context) category(t reflect.Type) CategoryEnum {
	cat, _ := c.categories.LoadOrCompute(t, func() CategoryEnum { return Dispatch(t) })
	return cat
}

// TypeName is the name written for t: the registered table name, the kind
// name for builtin scalars, or a Go type expression otherwise.
func (c *Context) TypeName(t reflect.Type) string {
	if name := c.members.TypeName(t); name != "" {
		return name
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + c.TypeName(t.Elem())
	case reflect.Slice:
		return "[]" + c.TypeName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + c.TypeName(t.Elem())
	case reflect.Map:
		return "map[" + c.TypeName(t.Key()) + "]" + c.TypeName(t.Elem())
	}

	if t.PkgPath() == "" {
		if k := primitive.FromReflectType(t); k != 0 {
			return k.Name()
		}

		return t.String()
	}

	return path.Base(t.PkgPath()) + "." + t.Name()
}
