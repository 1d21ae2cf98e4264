// Package member describes the fields the serialization engine visits on a type.
//
// A Member pairs a name and a tag set with an Accessor. Two accessor variants
// exist: direct struct fields (Field, FromStruct) and getter/setter pairs
// (Property). Either side of a property may be missing; calling the missing
// side returns an *AccessorError rather than panicking.
//
// A Table is the ordered member list of one type plus its registered name and
// version. Tables come from, in order of preference:
//  1. the type itself, when *T implements Describer
//  2. a Provider registered on the Registry
//  3. nothing: the type is unregistered and its members are not visited
//
// A Registry built with WithAutoDescribe additionally derives anonymous tables
// for unregistered struct types from their fields.
//
// Inheritance is composition: a derived table lists the members of its bases
// first (see Compose and Through). Tables are not de-duplicated; a name listed
// twice is visited twice.
package member
