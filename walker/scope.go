package walker

import "objtree/options"

// Scope holds a cursor that was moved into a child node. Release moves it back
// to the parent exactly once, so it is safe to both defer and call it early.
type Scope struct {
	w        Walker
	released bool
}

// NewChild creates the named child and enters it. It fails when a child with
// that name already exists.
func NewChild(w Walker, name string, tags options.TagEnum) (*Scope, bool) {
	if !w.CreateChild(name, tags, true) {
		return nil, false
	}

	return &Scope{w: w}, true
}

// Child enters an existing child.
func Child(w Walker, name string) (*Scope, bool) {
	if !w.ToChild(name) {
		return nil, false
	}

	return &Scope{w: w}, true
}

// Release returns the cursor to the parent node.
func (s *Scope) Release() {
	if s == nil || s.released {
		return
	}

	s.released = true
	s.w.ToParent()
}
