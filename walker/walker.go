package walker

import (
	"reflect"

	"objtree/options"
	"objtree/primitive"
)

// Walker is a cursor over a tree of named nodes.
//
// Navigation methods return false and leave the cursor in place when the target
// does not exist. Names are unique among the children of one node and among the
// attributes of one node; creating a duplicate fails instead of overwriting.
type Walker interface {
	Name() string
	SetName(name string)

	HasParent() bool
	ToParent() bool
	HasNextSibling() bool
	ToNext() bool
	HasPreviousSibling() bool
	ToPrevious() bool
	HasChildren() bool
	ToFirstChild() bool
	ToChild(name string) bool

	// CreateChild appends a child node. With moveCursor the cursor ends on the new
	// child and the caller is responsible for returning to the parent.
	CreateChild(name string, tags options.TagEnum, moveCursor bool) bool

	HasAttribute(name string) bool
	CreateAttribute(name string, tags options.TagEnum) bool

	// SetValue stores v in an existing attribute.
	SetValue(name string, v primitive.Value) bool
	// Value returns the attribute content as stored, which may be raw text.
	Value(name string) (primitive.Value, bool)
}

// Scalar lists the Go types accepted by the typed accessors.
type Scalar interface {
	~string | ~bool |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Set creates the attribute if needed and stores v in it.
func Set[T Scalar](w Walker, name string, v T) bool {
	val, err := primitive.FromReflect(reflect.ValueOf(v))
	if err != nil {
		return false
	}

	return Put(w, name, options.TagNone, val)
}

// Put creates the attribute with tags if needed and stores v in it.
func Put(w Walker, name string, tags options.TagEnum, v primitive.Value) bool {
	if !w.HasAttribute(name) && !w.CreateAttribute(name, tags) {
		return false
	}

	return w.SetValue(name, v)
}

// Get reads the attribute as T. A missing attribute or one of another kind
// yields false.
func Get[T Scalar](w Walker, name string) (T, bool) {
	var out T

	v, ok := w.Value(name)
	if !ok {
		return out, false
	}

	if err := v.AssignTo(reflect.ValueOf(&out).Elem()); err != nil {
		var zero T
		return zero, false
	}

	return out, true
}
