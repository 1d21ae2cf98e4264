// Package walker defines the tree cursor the serialization engine writes to
// and reads from.
//
// A Walker points at one node of a persisted tree. Nodes have a name, scalar
// attributes and ordered children. The engine never owns the tree; it moves the
// cursor around and creates nodes and attributes through this contract, so any
// storage that can implement it can back a serialization pass.
//
// Moving into a child is paired with moving back out through Scope:
//
//	scope, ok := walker.NewChild(w, "Inventory", options.TagNone)
//	if !ok {
//		return errDuplicate
//	}
//	defer scope.Release()
package walker
