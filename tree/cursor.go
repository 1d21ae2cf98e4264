package tree

import (
	"objtree/options"
	"objtree/primitive"
	"objtree/walker"
)

var _ walker.Walker = (*Cursor)(nil)

// Cursor walks a Node tree.
type Cursor struct {
	root *Node
	cur  *Node
}

// NewCursor returns a cursor positioned on root.
func NewCursor(root *Node) *Cursor {
	return &Cursor{root: root, cur: root}
}

// Root returns the node the cursor was created on.
func (c *Cursor) Root() *Node { return c.root }

// Node returns the node under the cursor.
func (c *Cursor) Node() *Node { return c.cur }

// Reset moves the cursor back to the root.
func (c *Cursor) Reset() { c.cur = c.root }

func (c *Cursor) Name() string { return c.cur.name }

func (c *Cursor) SetName(name string) { c.cur.Rename(name) }

func (c *Cursor) HasParent() bool { return c.cur != c.root && c.cur.parent != nil }

func (c *Cursor) ToParent() bool {
	if !c.HasParent() {
		return false
	}

	c.cur = c.cur.parent
	return true
}

func (c *Cursor) HasNextSibling() bool {
	if !c.HasParent() {
		return false
	}

	return c.cur.position()+1 < len(c.cur.parent.children)
}

func (c *Cursor) ToNext() bool {
	if !c.HasNextSibling() {
		return false
	}

	c.cur = c.cur.parent.children[c.cur.position()+1]
	return true
}

func (c *Cursor) HasPreviousSibling() bool {
	if !c.HasParent() {
		return false
	}

	return c.cur.position() > 0
}

func (c *Cursor) ToPrevious() bool {
	if !c.HasPreviousSibling() {
		return false
	}

	c.cur = c.cur.parent.children[c.cur.position()-1]
	return true
}

func (c *Cursor) HasChildren() bool { return len(c.cur.children) > 0 }

func (c *Cursor) ToFirstChild() bool {
	if !c.HasChildren() {
		return false
	}

	c.cur = c.cur.children[0]
	return true
}

func (c *Cursor) ToChild(name string) bool {
	child := c.cur.Child(name)
	if child == nil {
		return false
	}

	c.cur = child
	return true
}

func (c *Cursor) CreateChild(name string, tags options.TagEnum, moveCursor bool) bool {
	child, ok := c.cur.AddChild(name, tags)
	if !ok {
		return false
	}

	if moveCursor {
		c.cur = child
	}

	return true
}

func (c *Cursor) HasAttribute(name string) bool { return c.cur.Attribute(name) != nil }

func (c *Cursor) CreateAttribute(name string, tags options.TagEnum) bool {
	_, ok := c.cur.AddAttribute(name, tags, primitive.Value{})
	return ok
}

func (c *Cursor) SetValue(name string, v primitive.Value) bool {
	attr := c.cur.Attribute(name)
	if attr == nil {
		return false
	}

	attr.Value = v
	return true
}

func (c *Cursor) Value(name string) (primitive.Value, bool) {
	attr := c.cur.Attribute(name)
	if attr == nil || !attr.Value.IsValid() {
		return primitive.Value{}, false
	}

	return attr.Value, true
}
