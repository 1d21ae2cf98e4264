package serde_test

import (
	"objtree/member"
	"objtree/options"
	"objtree/serde"
	"objtree/walker"
)

type Simple struct {
	IntVarOne int32
	IntVarTwo int32
}

func (Simple) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Simple",
		Members: []member.Member{
			member.Field[Simple]("IntVarOne", options.TagNone),
			member.Field[Simple]("IntVarTwo", options.TagNone),
		},
	}
}

type SimpleBase interface {
	Label() string
}

type SimpleDerivedOne struct {
	StringVar string
	DoubleVar float64
	Ints      []int32
}

func (d *SimpleDerivedOne) Label() string { return d.StringVar }

func (SimpleDerivedOne) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "SimpleDerivedOne",
		Version:  1,
		Members: []member.Member{
			member.Field[SimpleDerivedOne]("StringVar", options.TagNone),
			member.Field[SimpleDerivedOne]("DoubleVar", options.TagNone),
			member.Field[SimpleDerivedOne]("Ints", options.TagNone),
		},
	}
}

type SimpleDerivedTwo struct {
	Flag bool
}

func (d *SimpleDerivedTwo) Label() string { return "two" }

func (SimpleDerivedTwo) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "SimpleDerivedTwo",
		Members:  []member.Member{member.Field[SimpleDerivedTwo]("Flag", options.TagNone)},
	}
}

// Celsius is held by value in interfaces.
type Celsius struct {
	Degrees float32
}

func (c Celsius) Label() string { return "celsius" }

func (Celsius) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Celsius",
		Members:  []member.Member{member.Field[Celsius]("Degrees", options.TagNone)},
	}
}

type Holder struct {
	Base   SimpleBase
	Others []SimpleBase
	Ref    SimpleBase
}

func (Holder) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Holder",
		Members: []member.Member{
			member.Field[Holder]("Base", options.TagNone),
			member.Field[Holder]("Others", options.TagNone),
			member.Field[Holder]("Ref", options.TagNotOwned),
		},
	}
}

type Item struct {
	N int32
}

func (Item) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Item",
		Members:  []member.Member{member.Field[Item]("N", options.TagNone)},
	}
}

// Pair is described through a registered provider.
type Pair struct {
	A, B   *Item
	L1, L2 *Item
}

func pairTable() member.Table {
	return member.Table{
		TypeName: "Pair",
		Members: []member.Member{
			member.Field[Pair]("A", options.TagNone),
			member.Field[Pair]("B", options.TagNone),
			member.Field[Pair]("L1", options.TagNotOwned),
			member.Field[Pair]("L2", options.TagNotOwned),
		},
	}
}

// Forward lists its link before the owner.
type Forward struct {
	Link  *Item
	Owner *Item
}

func (Forward) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Forward",
		Members: []member.Member{
			member.Field[Forward]("Link", options.TagNotOwned),
			member.Field[Forward]("Owner", options.TagNone),
		},
	}
}

type Node struct {
	Name  string
	Next  *Node
	Prev  *Node
	Peers []*Node
}

func (Node) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Node",
		Members: []member.Member{
			member.Field[Node]("Name", options.TagNone),
			member.Field[Node]("Next", options.TagNone),
			member.Field[Node]("Prev", options.TagNotOwned),
			member.Field[Node]("Peers", options.TagNotOwned),
		},
	}
}

type Team struct {
	Lead, Backup *Item
}

func (Team) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Team",
		Members: []member.Member{
			member.Field[Team]("Lead", options.TagShared),
			member.Field[Team]("Backup", options.TagShared),
		},
	}
}

type Tagged struct {
	Keep  int32
	Skip  string
	Local string
	Gen   int32
	Old   int32
}

func (Tagged) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Tagged",
		Members: []member.Member{
			member.Field[Tagged]("Keep", options.TagNone),
			member.Field[Tagged]("Skip", options.TagIgnore),
			member.Field[Tagged]("Local", options.TagLocal),
			member.Field[Tagged]("Gen", options.TagGenerated),
			member.Field[Tagged]("Old", options.TagDeprecated),
		},
	}
}

// Gauge keeps its state private behind accessors.
type Gauge struct {
	level  int16
	target *Item
	Items  []*Item
}

func (g *Gauge) Level() int16       { return g.level }
func (g *Gauge) SetLevel(v int16)   { g.level = v }
func (g *Gauge) Target() *Item      { return g.target }
func (g *Gauge) SetTarget(it *Item) { g.target = it }

func (Gauge) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Gauge",
		Members: []member.Member{
			member.Property("Level", (*Gauge).Level, (*Gauge).SetLevel, options.TagNone),
			member.Property("Target", (*Gauge).Target, (*Gauge).SetTarget, options.TagNotOwned),
			member.Field[Gauge]("Items", options.TagNone),
		},
	}
}

type Versioned struct {
	V           int32
	Seen        uint32
	Constructed bool
}

func (v *Versioned) Construct(version uint32, _ walker.Walker) error {
	v.Seen = version
	v.Constructed = true
	return nil
}

func (Versioned) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Versioned",
		Version:  4,
		Members:  []member.Member{member.Field[Versioned]("V", options.TagNone)},
	}
}

type Box struct {
	Ptr   *Versioned
	Count *int64
	Deep  **Item
}

func (Box) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Box",
		Members: []member.Member{
			member.Field[Box]("Ptr", options.TagNone),
			member.Field[Box]("Count", options.TagNone),
			member.Field[Box]("Deep", options.TagNone),
		},
	}
}

type Ref struct {
	Target *Item
}

func (Ref) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Ref",
		Members:  []member.Member{member.Field[Ref]("Target", options.TagNotOwned)},
	}
}

// Index stores links in map values, which are filled through copies.
type Index struct {
	Refs  map[string]Ref
	Owned []*Item
}

func (Index) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Index",
		Members: []member.Member{
			member.Field[Index]("Refs", options.TagNone),
			member.Field[Index]("Owned", options.TagNone),
		},
	}
}

type Outer struct {
	In Simple
}

func (Outer) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "Outer",
		Members:  []member.Member{member.Field[Outer]("In", options.TagNone)},
	}
}

// Empty has no fields, so every allocation of it may share one address.
type Empty struct{}

func (Empty) DescribeMembers() member.Table {
	return member.Table{TypeName: "Empty"}
}

type TwoEmpty struct {
	A, B *Empty
	L    *Empty
}

func (TwoEmpty) DescribeMembers() member.Table {
	return member.Table{
		TypeName: "TwoEmpty",
		Members: []member.Member{
			member.Field[TwoEmpty]("A", options.TagNone),
			member.Field[TwoEmpty]("B", options.TagNone),
			member.Field[TwoEmpty]("L", options.TagNotOwned),
		},
	}
}

// newContext registers every type used by the tests.
func newContext(opts ...serde.Option) *serde.Context {
	ctx := serde.NewContext(opts...)

	serde.Describe[SimpleBase](ctx, func() member.Table { return member.Table{TypeName: "SimpleBase"} })
	serde.Describe[Pair](ctx, pairTable)

	for _, register := range []func(*serde.Context) error{
		serde.RegisterCaster[SimpleBase, *SimpleDerivedOne],
		serde.RegisterCaster[SimpleBase, Celsius],
	} {
		if err := register(ctx); err != nil {
			panic(err)
		}
	}

	return ctx
}
