// Package caster keeps the adapters that let the engine serialize a concrete
// type while holding only an interface value.
package caster

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

var (
	ErrBaseIsNotInterface = errors.New("caster base must be an interface type")
	ErrNotImplemented     = errors.New("derived type does not implement base")
	ErrDoublePointer      = errors.New("caster does not support double pointers")
	ErrNotDerived         = errors.New("value does not hold the derived type")
)

// Writer writes the body of a concrete pointee. The serialization engine
// implements it; casters call back into it at the derived type.
type Writer interface {
	WritePointee(v reflect.Value) error
}

// Reader is the reading counterpart of Writer.
type Reader interface {
	ReadPointee(dst reflect.Value) error
}

// Caster connects an interface base type with one concrete type stored in it.
//
// Derived is the dynamic type held by the interface: either *D or a value D.
type Caster struct {
	Base, Derived         reflect.Type
	BaseName, DerivedName string
}

// New builds the caster for base B and derived D. D must implement B.
func New[B, D any](baseName, derivedName string) (*Caster, error) {
	return Of(reflect.TypeFor[B](), reflect.TypeFor[D](), baseName, derivedName)
}

// Of is New for types known only at run time.
func Of(base, derived reflect.Type, baseName, derivedName string) (*Caster, error) {
	if base.Kind() != reflect.Interface {
		return nil, errors.Wrapf(ErrBaseIsNotInterface, "%s", base)
	}

	if derived.Kind() == reflect.Pointer && derived.Elem().Kind() == reflect.Pointer {
		return nil, errors.Wrapf(ErrDoublePointer, "%s", derived)
	}

	if derived.Kind() == reflect.Interface || !derived.Implements(base) {
		return nil, errors.Wrapf(ErrNotImplemented, "%s as %s", derived, base)
	}

	return &Caster{
		Base:        base,
		Derived:     derived,
		BaseName:    baseName,
		DerivedName: derivedName,
	}, nil
}

// Pointee is the type whose members are written: D for both *D and D.
func (c *Caster) Pointee() reflect.Type {
	if c.Derived.Kind() == reflect.Pointer {
		return c.Derived.Elem()
	}

	return c.Derived
}

// Upcast converts a Derived value into a Base value.
func (c *Caster) Upcast(d reflect.Value) reflect.Value {
	b := reflect.New(c.Base).Elem()
	b.Set(d)
	return b
}

// Downcast extracts the Derived value stored in the Base value b.
func (c *Caster) Downcast(b reflect.Value) (reflect.Value, bool) {
	if b.Kind() == reflect.Interface {
		if b.IsNil() {
			return reflect.Value{}, false
		}

		b = b.Elem()
	}

	if b.Type() != c.Derived {
		return reflect.Value{}, false
	}

	return b, true
}

// Serialize writes the derived body of the Base value b through e.
func (c *Caster) Serialize(e Writer, b reflect.Value) error {
	d, ok := c.Downcast(b)
	if !ok {
		return errors.Wrapf(ErrNotDerived, "%s is not %s", b.Type(), c.Derived)
	}

	if d.Kind() == reflect.Pointer {
		if d.IsNil() {
			return errors.Wrapf(ErrNotDerived, "nil %s", c.Derived)
		}

		return e.WritePointee(d.Elem())
	}

	// copy, so value-held derived types are addressable for accessors
	tmp := reflect.New(c.Derived).Elem()
	tmp.Set(d)

	return e.WritePointee(tmp)
}

// Deserialize allocates a fresh Derived value and reads its body through e.
// The result is of type Derived; Upcast turns it into a Base value.
func (c *Caster) Deserialize(e Reader) (reflect.Value, error) {
	ptr := reflect.New(c.Pointee())
	if err := e.ReadPointee(ptr.Elem()); err != nil {
		return reflect.Value{}, err
	}

	if c.Derived.Kind() == reflect.Pointer {
		return ptr, nil
	}

	return ptr.Elem(), nil
}
