package backend

import (
	"io"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"objtree/tree"
	"objtree/walker"
)

var ErrUnknownBackend = errors.New("unknown backend")

// DefaultRootName names the root node of a fresh backend.
const DefaultRootName = "root"

// Backend owns a tree and its persistence.
type Backend interface {
	ImplementationName() string
	// Root returns a cursor positioned on the root node.
	Root() walker.Walker
	// Read replaces the tree with the one decoded from r.
	Read(r io.Reader) error
	// Write encodes the tree to w.
	Write(w io.Writer) error
	// Tree exposes the underlying storage.
	Tree() *tree.Node
}

// Factory creates an empty backend.
type Factory func() Backend

var factories = map[string]Factory{
	TextName:    func() Backend { return NewText() },
	YAMLName:    func() Backend { return NewYAML() },
	JSONName:    func() Backend { return NewJSON() },
	MsgpackName: func() Backend { return NewMsgpack() },
}

// New creates an empty backend by implementation name.
func New(name string) (Backend, error) {
	f, ok := factories[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q (known: %v)", name, Names())
	}

	return f(), nil
}

// Names lists the known implementation names, sorted.
func Names() []string {
	names := lo.Keys(factories)
	slices.Sort(names)

	return names
}

// Convert copies the tree of src into dst, replacing what dst held.
func Convert(dst, src Backend) error {
	root, err := tree.FromDocument(src.Tree().Document())
	if err != nil {
		return errors.Wrap(err, "copy tree")
	}

	setTree(dst, root)
	return nil
}

type setter interface{ setTree(root *tree.Node) }

func setTree(b Backend, root *tree.Node) {
	if s, ok := b.(setter); ok {
		s.setTree(root)
	}
}

// base stores the tree shared by every implementation.
type base struct {
	root *tree.Node
}

func newBase() base {
	return base{root: tree.NewNode(DefaultRootName)}
}

func (b *base) Root() walker.Walker { return tree.NewCursor(b.root) }

func (b *base) Tree() *tree.Node { return b.root }

func (b *base) setTree(root *tree.Node) { b.root = root }

// decodeDocument rebuilds the tree from a decoded document.
func (b *base) decodeDocument(doc tree.Document) error {
	root, err := tree.FromDocument(doc)
	if err != nil {
		return err
	}

	b.root = root
	return nil
}
