package serde

import (
	"reflect"

	"objtree/primitive"
)

//go:generate go tool stringer -type=CategoryEnum -output=category_string.go

// CategoryEnum is the handling route of a Go type.
type CategoryEnum int

const (
	CategoryUnknown     CategoryEnum = iota
	CategoryScalar                   // attribute on the current node
	CategorySequence                 // slice or array
	CategoryAssociative              // map
	CategoryClass                    // struct described by a member table
	CategoryPointer                  // Go pointer, owned or linked
	CategoryInterface                // polymorphic holder, routed through casters

	// CategoryTotal is a constant that represents the total number of categories defined
	CategoryTotal = int(iota)
)

// Dispatch returns the category of t. Scalars win over structural kinds, so
// big.Float and text marshaling types are attributes.
func Dispatch(t reflect.Type) CategoryEnum {
	if primitive.FromReflectType(t) != 0 {
		return CategoryScalar
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return CategorySequence
	case reflect.Map:
		return CategoryAssociative
	case reflect.Struct:
		return CategoryClass
	case reflect.Pointer:
		return CategoryPointer
	case reflect.Interface:
		return CategoryInterface
	}

	return CategoryUnknown
}
