package member

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// Describer is implemented by types that list their own members. The method
// is called on a zero value and must not depend on its state. A promoted
// DescribeMembers counts, so a struct embedding a Describer describes itself too.
type Describer interface {
	DescribeMembers() Table
}

// Provider builds the table of a type that cannot describe itself.
type Provider func() Table

var describerType = reflect.TypeFor[Describer]()

// Registry resolves member tables. Resolved tables are cached; it is safe for
// concurrent use.
type Registry struct {
	providers *xsync.MapOf[reflect.Type, Provider]
	tables    *xsync.MapOf[reflect.Type, *Table]
	auto      bool
}

type Option func(*Registry)

// WithAutoDescribe derives anonymous tables for unregistered structs with FromStruct.
func WithAutoDescribe() Option {
	return func(r *Registry) { r.auto = true }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		providers: xsync.NewMapOf[reflect.Type, Provider](),
		tables:    xsync.NewMapOf[reflect.Type, *Table](),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register installs p for t, replacing any earlier provider.
func (r *Registry) Register(t reflect.Type, p Provider) {
	if p == nil {
		panic("member provider cannot be nil")
	}

	r.providers.Store(t, p)
	r.tables.Delete(t)
}

// Register installs p for T.
func Register[T any](r *Registry, p Provider) {
	r.Register(reflect.TypeFor[T](), p)
}

// Lookup returns the table of t, or nil when t is unregistered.
func (r *Registry) Lookup(t reflect.Type) (*Table, error) {
	if tbl, ok := r.tables.Load(t); ok {
		return tbl, nil
	}

	// Providers may look up other types, so the table is built outside the map.
	tbl, err := r.build(t)
	if err != nil {
		return nil, err
	}

	actual, _ := r.tables.LoadOrStore(t, tbl)
	return actual, nil
}

// TypeName returns the registered name of t, or "" when it has none.
func (r *Registry) TypeName(t reflect.Type) string {
	tbl, err := r.Lookup(t)
	if err != nil || tbl == nil {
		return ""
	}

	return tbl.TypeName
}

func (r *Registry) build(t reflect.Type) (*Table, error) {
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(describerType) {
		tbl := reflect.New(t).Interface().(Describer).DescribeMembers()
		return &tbl, nil
	}

	if p, ok := r.providers.Load(t); ok {
		tbl := p()
		return &tbl, nil
	}

	if r.auto && t.Kind() == reflect.Struct {
		members, err := FromStruct(t)
		if err != nil {
			return nil, errors.Wrap(err, "auto describe")
		}

		return &Table{Members: members}, nil
	}

	return nil, nil
}
