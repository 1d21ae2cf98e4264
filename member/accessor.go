package member

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
)

var (
	ErrAbsentGetter = errors.New("member has no getter")
	ErrAbsentSetter = errors.New("member has no setter")
)

// AccessorError reports a call to a missing accessor side.
type AccessorError struct {
	Member string
	Owner  reflect.Type
	Err    error
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("%s.%s: %v", typeLabel(e.Owner), e.Member, e.Err)
}

func (e *AccessorError) Unwrap() error { return e.Err }

// Accessor reads and writes one member of a struct instance. The instance is
// always an addressable struct value.
type Accessor interface {
	// Type is the static type of the member.
	Type() reflect.Type
	// Get returns the member value. When InPlace is true the result aliases the
	// instance storage and may be written directly.
	Get(instance reflect.Value) (reflect.Value, error)
	Set(instance reflect.Value, v reflect.Value) error
	InPlace() bool
}

type fieldAccessor struct {
	index []int
	typ   reflect.Type
}

func (a fieldAccessor) Type() reflect.Type { return a.typ }
func (a fieldAccessor) InPlace() bool      { return true }

func (a fieldAccessor) Get(instance reflect.Value) (reflect.Value, error) {
	return instance.FieldByIndexErr(a.index)
}

func (a fieldAccessor) Set(instance reflect.Value, v reflect.Value) error {
	f, err := instance.FieldByIndexErr(a.index)
	if err != nil {
		return err
	}

	f.Set(v)
	return nil
}

// propertyAccessor wraps a getter/setter pair over *O.
type propertyAccessor struct {
	owner reflect.Type
	typ   reflect.Type
	get   func(ptr reflect.Value) reflect.Value
	set   func(ptr reflect.Value, v reflect.Value)
}

func (a propertyAccessor) Type() reflect.Type { return a.typ }
func (a propertyAccessor) InPlace() bool      { return false }

func (a propertyAccessor) Get(instance reflect.Value) (reflect.Value, error) {
	if a.get == nil {
		return reflect.Value{}, ErrAbsentGetter
	}

	return a.get(instance.Addr()), nil
}

func (a propertyAccessor) Set(instance reflect.Value, v reflect.Value) error {
	if a.set == nil {
		return ErrAbsentSetter
	}

	a.set(instance.Addr(), v)
	return nil
}

// throughAccessor re-roots an accessor of an embedded base struct onto the
// derived struct holding it.
type throughAccessor struct {
	index []int
	inner Accessor
}

func (a throughAccessor) Type() reflect.Type { return a.inner.Type() }
func (a throughAccessor) InPlace() bool      { return a.inner.InPlace() }

func (a throughAccessor) Get(instance reflect.Value) (reflect.Value, error) {
	base, err := instance.FieldByIndexErr(a.index)
	if err != nil {
		return reflect.Value{}, err
	}

	return a.inner.Get(base)
}

func (a throughAccessor) Set(instance reflect.Value, v reflect.Value) error {
	base, err := instance.FieldByIndexErr(a.index)
	if err != nil {
		return err
	}

	return a.inner.Set(base, v)
}

func typeLabel(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
