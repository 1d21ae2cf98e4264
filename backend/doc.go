// Package backend persists walker trees.
//
// Every backend keeps an in-memory tree.Node tree, hands out a cursor over it
// through Root, and moves the whole tree to or from a stream in one call.
// Formats:
//   - text: the bracketed human readable form {name [attr:value] {child}}
//   - yaml: gopkg.in/yaml.v3 document of the tree
//   - json: json-iterator document of the tree
//   - msgpack: vmihailenco/msgpack binary document of the tree
//
// Only msgpack, yaml and json keep attribute kinds. Text attributes come back
// as raw values that take their kind on first typed read.
package backend
