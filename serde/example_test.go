package serde_test

import (
	"fmt"
	"math/big"
	"os"
	"reflect"
	"time"

	"objtree/backend"
	"objtree/serde"
)

func ExampleDispatch() {
	for _, t := range []reflect.Type{
		reflect.TypeFor[int32](),
		reflect.TypeFor[time.Time](),
		reflect.TypeFor[big.Float](),
		reflect.TypeFor[[]string](),
		reflect.TypeFor[map[string]int](),
		reflect.TypeFor[Simple](),
		reflect.TypeFor[*Simple](),
		reflect.TypeFor[SimpleBase](),
		reflect.TypeFor[chan int](),
	} {
		fmt.Printf("%-16s %s\n", t, serde.Dispatch(t))
	}

	// Output:
	// int32            CategoryScalar
	// time.Time        CategoryScalar
	// big.Float        CategoryScalar
	// []string         CategorySequence
	// map[string]int   CategoryAssociative
	// serde_test.Simple CategoryClass
	// *serde_test.Simple CategoryPointer
	// serde_test.SimpleBase CategoryInterface
	// chan int         CategoryUnknown
}

func ExampleWrite() {
	ctx := newContext()

	in := &Holder{Base: &SimpleDerivedOne{StringVar: "one", Ints: []int32{7}}}
	if err := serde.Write(ctx, backend.NewText(), os.Stdout, "root", in); err != nil {
		fmt.Println(err)
	}

	// Output:
	// {root [InstanceID:1 TypeName:Holder Version:0]
	// 	{Base [IsOwned:true InstanceID:2 TypeName:SimpleDerivedOne Version:1 StringVar:one DoubleVar:0]
	// 		{Ints [ElementCount:1 ElementType:int32 Element0:7]}
	// 	}
	// 	{Others [ElementCount:0 ElementType:SimpleBase]}
	// 	{Ref [IsOwned:false InstanceID:0]}
	// }
}

func ExampleContext_TypeName() {
	ctx := newContext()

	for _, t := range []reflect.Type{
		reflect.TypeFor[Simple](),
		reflect.TypeFor[map[string][]*Item](),
		reflect.TypeFor[[2]SimpleBase](),
		reflect.TypeFor[uint](),
		reflect.TypeFor[time.Duration](),
	} {
		fmt.Println(ctx.TypeName(t))
	}

	// Output:
	// Simple
	// map[string][]*Item
	// [2]SimpleBase
	// uint64
	// time.Duration
}
