package serde

import (
	"io"

	"objtree/backend"
)

// Write serializes v into b and encodes the tree to out.
func Write(ctx *Context, b backend.Backend, out io.Writer, name string, v any, opts ...PassOption) error {
	if err := Serialize(ctx, b.Root(), name, v, opts...); err != nil {
		return err
	}

	return b.Write(out)
}

// Read decodes a tree from in into b and deserializes it into dst.
func Read(ctx *Context, b backend.Backend, in io.Reader, name string, dst any, opts ...PassOption) error {
	if err := b.Read(in); err != nil {
		return err
	}

	return Deserialize(ctx, b.Root(), name, dst, opts...)
}
