package member

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"

	"objtree/options"
)

// Member is one named, tagged member of a described type.
type Member struct {
	Name     string
	Tags     options.TagEnum
	Accessor Accessor

	owner reflect.Type
}

func (m Member) Type() reflect.Type { return m.Accessor.Type() }

// Get reads the member from an addressable struct instance.
func (m Member) Get(instance reflect.Value) (reflect.Value, error) {
	v, err := m.Accessor.Get(instance)
	return v, m.wrap(err)
}

// Set writes v into the member of an addressable struct instance.
func (m Member) Set(instance reflect.Value, v reflect.Value) error {
	return m.wrap(m.Accessor.Set(instance, v))
}

func (m Member) wrap(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrAbsentGetter) || errors.Is(err, ErrAbsentSetter) {
		return &AccessorError{Member: m.Name, Owner: m.owner, Err: err}
	}

	return errors.Wrapf(err, "member %s", m.Name)
}

// Tagged returns a copy of m with tags added.
func (m Member) Tagged(tags options.TagEnum) Member {
	m.Tags = m.Tags.With(tags)
	return m
}

// Renamed returns a copy of m listed under name.
func (m Member) Renamed(name string) Member {
	m.Name = name
	return m
}

func (m Member) String() string {
	return fmt.Sprintf("%s %s [%s]", m.Name, m.Type(), m.Tags)
}

// Field describes the exported struct field of T with the given Go name. The
// member name equals the field name. Field panics when T has no such field.
func Field[T any](field string, tags options.TagEnum) Member {
	owner := reflect.TypeFor[T]()
	if owner.Kind() != reflect.Struct {
		panic("member.Field requires a struct type, got " + owner.String())
	}

	f, ok := owner.FieldByName(field)
	if !ok || !f.IsExported() {
		panic("member.Field: " + owner.String() + " has no exported field " + field)
	}

	return Member{
		Name:     field,
		Tags:     tags,
		Accessor: fieldAccessor{index: f.Index, typ: f.Type},
		owner:    owner,
	}
}

// Property describes a member reached through a getter and a setter over *O.
// Either function may be nil; using the missing side yields an *AccessorError.
func Property[O, V any](name string, get func(*O) V, set func(*O, V), tags options.TagEnum) Member {
	acc := propertyAccessor{
		owner: reflect.TypeFor[O](),
		typ:   reflect.TypeFor[V](),
	}

	if get != nil {
		acc.get = func(ptr reflect.Value) reflect.Value {
			got := get(ptr.Interface().(*O))
			return reflect.ValueOf(&got).Elem()
		}
	}

	if set != nil {
		acc.set = func(ptr reflect.Value, v reflect.Value) {
			var val V
			if v.IsValid() {
				reflect.ValueOf(&val).Elem().Set(v)
			}

			set(ptr.Interface().(*O), val)
		}
	}

	return Member{Name: name, Tags: tags, Accessor: acc, owner: acc.owner}
}

// Through re-roots members of an embedded struct onto D. The embedded field is
// named by its Go field name and must be held by value.
func Through[D any](embedded string, members []Member) []Member {
	owner := reflect.TypeFor[D]()

	f, ok := owner.FieldByName(embedded)
	if !ok {
		panic("member.Through: " + owner.String() + " has no field " + embedded)
	}

	if f.Type.Kind() != reflect.Struct {
		panic("member.Through: field " + embedded + " must hold a struct by value")
	}

	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = Member{
			Name:     m.Name,
			Tags:     m.Tags,
			Accessor: throughAccessor{index: f.Index, inner: m.Accessor},
			owner:    owner,
		}
	}

	return out
}
