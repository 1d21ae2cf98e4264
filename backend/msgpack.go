package backend

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"objtree/tree"
)

const MsgpackName = "msgpack"

// Msgpack persists the tree as a MessagePack document.
type Msgpack struct {
	base
}

func NewMsgpack() *Msgpack { return &Msgpack{base: newBase()} }

func (*Msgpack) ImplementationName() string { return MsgpackName }

func (m *Msgpack) Read(r io.Reader) error {
	var doc tree.Document
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Wrap(err, "msgpack tree deserialization failed")
	}

	return m.decodeDocument(doc)
}

func (m *Msgpack) Write(w io.Writer) error {
	return errors.Wrap(msgpack.NewEncoder(w).Encode(m.root.Document()), "msgpack tree serialization failed")
}
