package primitive_test

import (
	"fmt"
	"math/big"
	"net/netip"
	"reflect"
	"time"

	"objtree/primitive"
)

func Example() {
	type IntEnum int16
	type StringEnum string
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(netip.Addr{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(big.Float{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(&Empty{})))
	// Output:
	// KindInt64
	// KindString
	// KindInt16
	// KindString
	// KindInt64
	// KindString
	// KindString
	// KindExtended
	// KindEnum(0)
	// KindEnum(0)
}

func ExampleParseKind() {
	for k := primitive.KindEnum(1); int(k) < primitive.KindTotal; k++ {
		if primitive.ParseKind(k.Name()) != k {
			fmt.Println("mismatch", k)
		}
	}

	fmt.Println(primitive.KindUint16.Name(), primitive.ParseKind("float32"), primitive.ParseKind("int"))
	// Output:
	// uint16 KindFloat32 KindEnum(0)
}
