package tree

import (
	"objtree/options"
	"objtree/primitive"
)

// Attribute is a named scalar on a node.
type Attribute struct {
	Name  string
	Tags  options.TagEnum
	Value primitive.Value
}

// Node is one element of the in-memory tree. Children keep insertion order;
// child names and attribute names are unique per node.
type Node struct {
	name   string
	tags   options.TagEnum
	parent *Node

	attrs      []*Attribute
	attrIndex  map[string]int
	children   []*Node
	childIndex map[string]int
}

// NewNode creates a detached root node.
func NewNode(name string) *Node {
	return &Node{name: name}
}

func (n *Node) Name() string             { return n.name }
func (n *Node) Tags() options.TagEnum    { return n.tags }
func (n *Node) Parent() *Node            { return n.parent }
func (n *Node) Children() []*Node        { return n.children }
func (n *Node) Attributes() []*Attribute { return n.attrs }
func (n *Node) NumChildren() int         { return len(n.children) }
func (n *Node) IsRoot() bool             { return n.parent == nil }

// Child returns the named child or nil.
func (n *Node) Child(name string) *Node {
	if i, ok := n.childIndex[name]; ok {
		return n.children[i]
	}

	return nil
}

// Attribute returns the named attribute or nil.
func (n *Node) Attribute(name string) *Attribute {
	if i, ok := n.attrIndex[name]; ok {
		return n.attrs[i]
	}

	return nil
}

// AddChild appends a new child. It returns false if the name is taken.
func (n *Node) AddChild(name string, tags options.TagEnum) (*Node, bool) {
	if _, exists := n.childIndex[name]; exists {
		return nil, false
	}

	if n.childIndex == nil {
		n.childIndex = make(map[string]int)
	}

	child := &Node{name: name, tags: tags, parent: n}
	n.childIndex[name] = len(n.children)
	n.children = append(n.children, child)

	return child, true
}

// AddAttribute appends a new attribute. It returns false if the name is taken.
func (n *Node) AddAttribute(name string, tags options.TagEnum, v primitive.Value) (*Attribute, bool) {
	if _, exists := n.attrIndex[name]; exists {
		return nil, false
	}

	if n.attrIndex == nil {
		n.attrIndex = make(map[string]int)
	}

	attr := &Attribute{Name: name, Tags: tags, Value: v}
	n.attrIndex[name] = len(n.attrs)
	n.attrs = append(n.attrs, attr)

	return attr, true
}

// Rename changes the node name unless a sibling already uses it.
func (n *Node) Rename(name string) bool {
	if name == n.name {
		return true
	}

	if n.parent == nil {
		n.name = name
		return true
	}

	p := n.parent
	if _, exists := p.childIndex[name]; exists {
		return false
	}

	i := p.childIndex[n.name]
	delete(p.childIndex, n.name)
	p.childIndex[name] = i
	n.name = name

	return true
}

// position returns the index of n among its siblings.
func (n *Node) position() int {
	if n.parent == nil {
		return 0
	}

	return n.parent.childIndex[n.name]
}

// Walk visits n and its descendants depth first. Returning false from fn skips
// the children of the visited node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}

	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node, int) bool {
		total++
		return true
	})

	return total
}
