package serde

import "strconv"

// Attributes and node names written by the engine itself.
const (
	AttrTypeName     = "TypeName"
	AttrVersion      = "Version"
	AttrElementCount = "ElementCount"
	AttrElementType  = "ElementType"
	AttrKeyType      = "KeyType"
	AttrValueType    = "ValueType"
	AttrIsOwned      = "IsOwned"
	AttrIsShared     = "IsShared"
	AttrInstanceID   = "InstanceID"

	NodeKey   = "Key"
	NodeValue = "Value"
)

// stem synthesizes sequential element names: Element0, Element1, ...
type stem string

const elementStem stem = "Element"

func (s stem) name(i int) string {
	return string(s) + strconv.Itoa(i)
}
