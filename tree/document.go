package tree

import (
	"github.com/cockroachdb/errors"

	"objtree/options"
	"objtree/primitive"
)

var ErrDuplicateName = errors.New("duplicate name")

// Document is the plain data shape of a Node, used by persisted formats.
type Document struct {
	Name       string         `json:"name" yaml:"name" msgpack:"name"`
	Tags       string         `json:"tags,omitempty" yaml:"tags,omitempty" msgpack:"tags,omitempty"`
	Attributes []AttributeDoc `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
	Children   []Document     `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

// AttributeDoc stores an attribute value as text. An empty Kind marks raw text.
type AttributeDoc struct {
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	Value string `json:"value" yaml:"value" msgpack:"value"`
	Tags  string `json:"tags,omitempty" yaml:"tags,omitempty" msgpack:"tags,omitempty"`
}

// Document converts the subtree rooted at n.
func (n *Node) Document() Document {
	doc := Document{Name: n.name, Tags: tagText(n.tags)}

	for _, a := range n.attrs {
		if !a.Value.IsValid() {
			continue
		}

		doc.Attributes = append(doc.Attributes, AttributeDoc{
			Name:  a.Name,
			Kind:  a.Value.Kind().Name(),
			Value: a.Value.Text(),
			Tags:  tagText(a.Tags),
		})
	}

	for _, c := range n.children {
		doc.Children = append(doc.Children, c.Document())
	}

	return doc
}

// FromDocument rebuilds a detached Node tree.
func FromDocument(doc Document) (*Node, error) {
	tags, err := options.ParseTags(doc.Tags)
	if err != nil {
		return nil, errors.Wrapf(err, "node %q", doc.Name)
	}

	n := NewNode(doc.Name)
	n.tags = tags
	if err := n.fill(doc); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Node) fill(doc Document) error {
	for _, ad := range doc.Attributes {
		v, err := ad.value()
		if err != nil {
			return errors.Wrapf(err, "node %q attribute %q", doc.Name, ad.Name)
		}

		tags, err := options.ParseTags(ad.Tags)
		if err != nil {
			return errors.Wrapf(err, "node %q attribute %q", doc.Name, ad.Name)
		}

		if _, ok := n.AddAttribute(ad.Name, tags, v); !ok {
			return errors.Wrapf(ErrDuplicateName, "node %q attribute %q", doc.Name, ad.Name)
		}
	}

	for _, cd := range doc.Children {
		tags, err := options.ParseTags(cd.Tags)
		if err != nil {
			return errors.Wrapf(err, "node %q", cd.Name)
		}

		child, ok := n.AddChild(cd.Name, tags)
		if !ok {
			return errors.Wrapf(ErrDuplicateName, "node %q child %q", doc.Name, cd.Name)
		}

		if err := child.fill(cd); err != nil {
			return err
		}
	}

	return nil
}

func (ad AttributeDoc) value() (primitive.Value, error) {
	if ad.Kind == "" {
		return primitive.Raw(ad.Value), nil
	}

	kind := primitive.ParseKind(ad.Kind)
	if kind == 0 {
		return primitive.Value{}, errors.Newf("unknown attribute kind %q", ad.Kind)
	}

	return primitive.Parse(kind, ad.Value)
}

func tagText(t options.TagEnum) string {
	if t == options.TagNone {
		return ""
	}

	return t.String()
}
