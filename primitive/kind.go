package primitive

import (
	"encoding"
	"math/big"
	"reflect"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum is the fixed set of scalar kinds an attribute may hold.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindString
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindExtended // arbitrary precision float, stored as math/big.Float

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindString:   "string",
	KindBool:     "bool",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindExtended: "extended",
}

// Name returns the short lowercase kind name used by persisted formats.
func (k KindEnum) Name() string {
	if !k.IsValid() {
		return ""
	}

	return kindNames[k]
}

// ParseKind is the reverse of KindEnum.Name. It returns the zero kind for unknown names.
func ParseKind(name string) KindEnum {
	for k := KindEnum(1); int(k) < KindTotal; k++ {
		if kindNames[k] == name {
			return k
		}
	}

	return 0
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64, KindExtended:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64, KindExtended:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only fixed width number kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

var (
	bigFloatType        = reflect.TypeOf(big.Float{})
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// IsText reports whether values of rtype travel through their text form.
func IsText(rtype reflect.Type) bool {
	if rtype == nil || rtype == bigFloatType || rtype.Kind() == reflect.Pointer || rtype.Kind() == reflect.Interface {
		return false
	}

	return rtype.Implements(textMarshalerType) && reflect.PointerTo(rtype).Implements(textUnmarshalerType)
}

// FromReflectType returns the attribute kind for rtype, or the zero kind when
// rtype is not a scalar. Go int and uint are stored at 64 bits.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if rtype == bigFloatType {
		return KindExtended
	}

	if IsText(rtype) {
		return KindString
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int, reflect.Int64:
		return KindInt64
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint, reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	}
}
