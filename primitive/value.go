package primitive

import (
	"cmp"
	"encoding"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	ErrKindMismatch = errors.New("attribute kind does not match destination")
	ErrNotScalar    = errors.New("type is not a scalar")
)

// ExtendedPrecision is the mantissa precision used when parsing extended values.
const ExtendedPrecision = 128

// Value is a single scalar attribute value of one fixed kind.
//
// A raw value carries text whose kind is not known yet, as produced by untyped
// formats. It takes a kind on first typed read through As.
type Value struct {
	kind KindEnum
	raw  bool

	s string
	b bool
	i int64
	u uint64
	f float64
	x *big.Float
}

func String(v string) Value   { return Value{kind: KindString, s: v} }
func Bool(v bool) Value       { return Value{kind: KindBool, b: v} }
func Int8(v int8) Value       { return Value{kind: KindInt8, i: int64(v)} }
func Int16(v int16) Value     { return Value{kind: KindInt16, i: int64(v)} }
func Int32(v int32) Value     { return Value{kind: KindInt32, i: int64(v)} }
func Int64(v int64) Value     { return Value{kind: KindInt64, i: v} }
func Uint8(v uint8) Value     { return Value{kind: KindUint8, u: uint64(v)} }
func Uint16(v uint16) Value   { return Value{kind: KindUint16, u: uint64(v)} }
func Uint32(v uint32) Value   { return Value{kind: KindUint32, u: uint64(v)} }
func Uint64(v uint64) Value   { return Value{kind: KindUint64, u: v} }
func Float32(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }
func Float64(v float64) Value { return Value{kind: KindFloat64, f: v} }

// Extended copies v, so later changes to v are not observed.
func Extended(v *big.Float) Value {
	if v == nil {
		v = new(big.Float)
	}

	return Value{kind: KindExtended, x: new(big.Float).Copy(v)}
}

// Raw wraps untyped text.
func Raw(text string) Value { return Value{raw: true, s: text} }

// Kind returns the value kind, or the zero kind for raw and invalid values.
func (v Value) Kind() KindEnum { return v.kind }

func (v Value) IsRaw() bool   { return v.raw }
func (v Value) IsValid() bool { return v.raw || v.kind.IsValid() }

// As returns v viewed as kind. Typed values convert only to their own kind; raw
// values are parsed.
func (v Value) As(kind KindEnum) (Value, bool) {
	if v.raw {
		parsed, err := Parse(kind, v.s)
		if err != nil {
			return Value{}, false
		}

		return parsed, true
	}

	if !v.kind.IsValid() || v.kind != kind {
		return Value{}, false
	}

	return v, true
}

func (v Value) Str() string          { return v.s }
func (v Value) Boolean() bool        { return v.b }
func (v Value) Int() int64           { return v.i }
func (v Value) Uint() uint64         { return v.u }
func (v Value) Float() float64       { return v.f }
func (v Value) BigFloat() *big.Float { return v.x }

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(other Value) bool { return v.raw == other.raw && Compare(v, other) == 0 }

// Interface returns the native Go value: string, bool, intN, uintN, floatN or *big.Float.
func (v Value) Interface() any {
	if v.raw {
		return v.s
	}

	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return v.b
	case KindInt8:
		return int8(v.i)
	case KindInt16:
		return int16(v.i)
	case KindInt32:
		return int32(v.i)
	case KindInt64:
		return v.i
	case KindUint8:
		return uint8(v.u)
	case KindUint16:
		return uint16(v.u)
	case KindUint32:
		return uint32(v.u)
	case KindUint64:
		return v.u
	case KindFloat32:
		return float32(v.f)
	case KindFloat64:
		return v.f
	case KindExtended:
		return v.x
	}

	return nil
}

// Text is the canonical textual form. Parse(v.Kind(), v.Text()) yields v back.
func (v Value) Text() string {
	if v.raw {
		return v.s
	}

	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.u, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindExtended:
		return v.x.Text('g', -1)
	}

	return ""
}

// Parse reads text as a value of kind.
func Parse(kind KindEnum, text string) (Value, error) {
	switch kind {
	case KindString:
		return String(text), nil
	case KindBool:
		b, err := strconv.ParseBool(text)
		return Bool(b), errors.Wrap(err, "parse bool")
	case KindInt8, KindInt16, KindInt32, KindInt64:
		i, err := strconv.ParseInt(text, 10, kind.Bits())
		if err != nil {
			return Value{}, errors.Wrapf(err, "parse %s", kind.Name())
		}

		return Value{kind: kind, i: i}, nil
	case KindUint8, KindUint16, KindUint32, KindUint64:
		u, err := strconv.ParseUint(text, 10, kind.Bits())
		if err != nil {
			return Value{}, errors.Wrapf(err, "parse %s", kind.Name())
		}

		return Value{kind: kind, u: u}, nil
	case KindFloat32, KindFloat64:
		f, err := strconv.ParseFloat(text, kind.Bits())
		if err != nil {
			return Value{}, errors.Wrapf(err, "parse %s", kind.Name())
		}

		return Value{kind: kind, f: f}, nil
	case KindExtended:
		x, _, err := big.ParseFloat(text, 10, ExtendedPrecision, big.ToNearestEven)
		if err != nil {
			return Value{}, errors.Wrap(err, "parse extended")
		}

		return Value{kind: KindExtended, x: x}, nil
	}

	return Value{}, errors.Wrapf(ErrNotScalar, "kind %s", kind)
}

// FromReflect converts a scalar reflect value into a Value.
func FromReflect(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Value{}, ErrNotScalar
	}

	rtype := rv.Type()
	kind := FromReflectType(rtype)
	if kind == 0 {
		return Value{}, errors.Wrapf(ErrNotScalar, "%s", rtype)
	}

	if IsText(rtype) {
		text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return Value{}, errors.Wrapf(err, "marshal %s", rtype)
		}

		return String(string(text)), nil
	}

	switch kind {
	case KindString:
		return String(rv.String()), nil
	case KindBool:
		return Bool(rv.Bool()), nil
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return Value{kind: kind, i: rv.Int()}, nil
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return Value{kind: kind, u: rv.Uint()}, nil
	case KindFloat32, KindFloat64:
		return Value{kind: kind, f: rv.Float()}, nil
	case KindExtended:
		f := rv.Interface().(big.Float)
		return Extended(&f), nil
	}

	return Value{}, errors.Wrapf(ErrNotScalar, "%s", rtype)
}

// AssignTo stores v into the settable rv. A raw value is parsed to the kind of
// rv first. A value of another kind yields ErrKindMismatch and leaves rv untouched.
func (v Value) AssignTo(rv reflect.Value) error {
	rtype := rv.Type()
	kind := FromReflectType(rtype)
	if kind == 0 {
		return errors.Wrapf(ErrNotScalar, "%s", rtype)
	}

	typed, ok := v.As(kind)
	if !ok {
		return errors.Wrapf(ErrKindMismatch, "%s into %s", v.describe(), rtype)
	}

	if IsText(rtype) {
		target := reflect.New(rtype)
		if err := target.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(typed.s)); err != nil {
			return errors.Wrapf(err, "unmarshal %s", rtype)
		}

		rv.Set(target.Elem())
		return nil
	}

	switch kind {
	case KindString:
		rv.SetString(typed.s)
	case KindBool:
		rv.SetBool(typed.b)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		if rtype.Kind() == reflect.Int && (typed.i < math.MinInt || typed.i > math.MaxInt) {
			return errors.Wrapf(ErrKindMismatch, "%d overflows int", typed.i)
		}

		rv.SetInt(typed.i)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		if rtype.Kind() == reflect.Uint && typed.u > uint64(math.MaxUint) {
			return errors.Wrapf(ErrKindMismatch, "%d overflows uint", typed.u)
		}

		rv.SetUint(typed.u)
	case KindFloat32, KindFloat64:
		rv.SetFloat(typed.f)
	case KindExtended:
		rv.Set(reflect.ValueOf(*new(big.Float).Copy(typed.x)))
	}

	return nil
}

func (v Value) describe() string {
	if v.raw {
		return "raw " + strconv.Quote(v.s)
	}

	return v.kind.Name()
}

// Compare orders values of the same kind naturally; otherwise by kind, raw last.
func Compare(a, b Value) int {
	if a.raw || b.raw {
		switch {
		case a.raw && b.raw:
			return cmp.Compare(a.s, b.s)
		case a.raw:
			return 1
		default:
			return -1
		}
	}

	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}

	switch {
	case a.kind == KindString:
		return cmp.Compare(a.s, b.s)
	case a.kind == KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case a.kind.IsSigned():
		return cmp.Compare(a.i, b.i)
	case a.kind.IsUnsigned():
		return cmp.Compare(a.u, b.u)
	case a.kind == KindExtended:
		ax, bx := a.x, b.x
		if ax == nil {
			ax = new(big.Float)
		}
		if bx == nil {
			bx = new(big.Float)
		}

		return ax.Cmp(bx)
	case a.kind.IsFloat():
		return cmp.Compare(a.f, b.f)
	}

	return 0
}
