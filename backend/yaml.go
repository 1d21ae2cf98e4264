package backend

import (
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"objtree/tree"
)

const YAMLName = "yaml"

// YAML persists the tree as a YAML document.
type YAML struct {
	base
}

func NewYAML() *YAML { return &YAML{base: newBase()} }

func (*YAML) ImplementationName() string { return YAMLName }

func (y *YAML) Read(r io.Reader) error {
	var doc tree.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Wrap(err, "failed to parse tree YAML")
	}

	return y.decodeDocument(doc)
}

func (y *YAML) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(y.root.Document()); err != nil {
		return errors.Wrap(err, "failed to write tree YAML")
	}

	return enc.Close()
}
