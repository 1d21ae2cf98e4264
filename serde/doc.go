// Package serde writes object graphs into a walker tree and reads them back.
//
// Every Go type is routed by Dispatch:
//
//   - scalars become attributes of the current node
//   - slices, arrays and maps become a child node with ElementCount and
//     element type attributes, and one Element{i} entry per element
//   - structs become a child node with TypeName and Version, then one entry
//     per member of their table (see package member)
//   - pointers become a child node with IsOwned and InstanceID; an owned
//     pointer carries the pointee body, a link carries only its identity
//   - interfaces are pointers whose body is written through the caster
//     registered for the dynamic type
//
// Identities are per pass. Links may precede their owner; they are patched
// when the owner is read. A second owner of a unique instance fails the pass
// with ErrOwnershipViolation; an identity never owned fails reading with
// ErrDanglingReference.
//
// Conditions tolerated by policy (unregistered types, absent attributes, name
// collisions) are recorded in the Report given with WithReport. An absent
// child node fails reading with ErrMalformed unless WithLenientNodes is given.
package serde
