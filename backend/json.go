package backend

import (
	"io"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"

	"objtree/tree"
)

const JSONName = "json"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON persists the tree as an indented JSON document.
type JSON struct {
	base
}

func NewJSON() *JSON { return &JSON{base: newBase()} }

func (*JSON) ImplementationName() string { return JSONName }

func (j *JSON) Read(r io.Reader) error {
	var doc tree.Document
	if err := jsonAPI.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Wrap(err, "failed to parse tree JSON")
	}

	return j.decodeDocument(doc)
}

func (j *JSON) Write(w io.Writer) error {
	enc := jsonAPI.NewEncoder(w)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(j.root.Document()), "failed to write tree JSON")
}
