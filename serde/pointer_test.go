package serde_test

import (
	stderrors "errors"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objtree/internal/diagnostic"
	"objtree/primitive"
	"objtree/serde"
	"objtree/tree"
)

func TestPolymorphic(t *testing.T) {
	t.Parallel()

	ctx := newContext()
	derived := &SimpleDerivedOne{StringVar: "one", DoubleVar: 2.5, Ints: []int32{1, 2, 3}}
	in := Holder{
		Base:   derived,
		Others: []SimpleBase{Celsius{Degrees: 21.5}, nil},
		Ref:    derived,
	}

	root := serialize(t, ctx, in)

	base := root.Child("Base")
	require.NotNil(t, base)
	assert.Equal(t,
		[]string{"IsOwned", "InstanceID", "TypeName", "Version", "StringVar", "DoubleVar"},
		attributeNames(base))
	assert.Equal(t, primitive.String("SimpleDerivedOne"), base.Attribute("TypeName").Value)
	assert.Equal(t, primitive.Uint32(1), base.Attribute("Version").Value)
	assert.Equal(t, []string{"Ints"}, childNames(base))

	byValue := root.Child("Others").Child("Element0")
	require.NotNil(t, byValue)
	assert.Equal(t, []string{"IsOwned", "TypeName", "Version", "Degrees"}, attributeNames(byValue))

	ref := root.Child("Ref")
	require.NotNil(t, ref)
	assert.Equal(t, primitive.Bool(false), ref.Attribute("IsOwned").Value)
	assert.Equal(t, base.Attribute("InstanceID").Value, ref.Attribute("InstanceID").Value)

	var out Holder
	require.NoError(t, serde.Deserialize(ctx, tree.NewCursor(root), "root", &out))

	assert.Equal(t, derived, out.Base)
	assert.Same(t, out.Base, out.Ref)
	require.Len(t, out.Others, 2)
	assert.Equal(t, Celsius{Degrees: 21.5}, out.Others[0])
	assert.Nil(t, out.Others[1])
}

func TestMissingCaster(t *testing.T) {
	t.Parallel()

	ctx := newContext()

	t.Run("writing", func(t *testing.T) {
		t.Parallel()

		var report serde.Report
		err := serde.Serialize(ctx, tree.NewCursor(tree.NewNode("")), "root", Holder{Base: &SimpleDerivedTwo{}},
			serde.WithReport(&report))
		require.ErrorIs(t, err, serde.ErrMissingCaster)
		assert.Contains(t, errors.FlattenHints(err), "SimpleDerivedOne")

		require.NotEmpty(t, report.Errors)
		missing := report.Errors[0]
		assert.Equal(t, diagnostic.CodeMissingCaster, missing.Code)
		assert.Equal(t, "SimpleDerivedTwo", missing.TypeName)
		assert.Equal(t, "root.Base", missing.Path)
		require.NotEmpty(t, missing.Suggestions)
		assert.Equal(t, "SimpleDerivedOne", missing.Suggestions[0])
	})

	t.Run("reading", func(t *testing.T) {
		t.Parallel()

		withTwo := newContext()
		require.NoError(t, serde.RegisterCaster[SimpleBase, *SimpleDerivedTwo](withTwo))
		root := serialize(t, withTwo, Holder{Base: &SimpleDerivedTwo{Flag: true}})

		var out Holder
		err := serde.Deserialize(ctx, tree.NewCursor(root), "root", &out)
		require.ErrorIs(t, err, serde.ErrMissingCaster)
	})
}

func TestValueHeldInterfaceCannotBeLinked(t *testing.T) {
	t.Parallel()

	err := serde.Serialize(newContext(), tree.NewCursor(tree.NewNode("")), "root", Holder{Ref: Celsius{}})
	require.ErrorIs(t, err, serde.ErrUnsupported)
}

func TestOwnership(t *testing.T) {
	t.Parallel()

	ctx := newContext()
	shared := &Item{N: 1}

	t.Run("second owner", func(t *testing.T) {
		t.Parallel()

		err := serde.Serialize(ctx, tree.NewCursor(tree.NewNode("")), "root", Pair{A: shared, B: shared})
		require.ErrorIs(t, err, serde.ErrOwnershipViolation)
	})

	t.Run("owner and links", func(t *testing.T) {
		t.Parallel()

		root := serialize(t, ctx, Pair{A: shared, L1: shared, L2: shared})

		owner := root.Child("A")
		assert.Equal(t, primitive.Bool(true), owner.Attribute("IsOwned").Value)
		assert.Equal(t, []string{"IsOwned", "InstanceID", "TypeName", "Version", "N"}, attributeNames(owner))

		for _, name := range []string{"L1", "L2"} {
			link := root.Child(name)
			require.NotNil(t, link, name)
			assert.Equal(t, []string{"IsOwned", "InstanceID", "TypeName"}, attributeNames(link))
			assert.Equal(t, primitive.Bool(false), link.Attribute("IsOwned").Value)
			assert.Equal(t, owner.Attribute("InstanceID").Value, link.Attribute("InstanceID").Value)
		}

		null := root.Child("B")
		assert.Equal(t, []string{"IsOwned", "InstanceID"}, attributeNames(null))
		assert.Equal(t, primitive.Uint64(0), null.Attribute("InstanceID").Value)

		var out Pair
		require.NoError(t, serde.Deserialize(ctx, tree.NewCursor(root), "root", &out))

		assert.Equal(t, int32(1), out.A.N)
		assert.Nil(t, out.B)
		assert.Same(t, out.A, out.L1)
		assert.Same(t, out.A, out.L2)
		assert.NotSame(t, shared, out.A)
	})
}

func TestForwardReference(t *testing.T) {
	t.Parallel()

	ctx := newContext()
	item := &Item{N: 4}

	root := serialize(t, ctx, Forward{Link: item, Owner: item})

	var out Forward
	require.NoError(t, serde.Deserialize(ctx, tree.NewCursor(root), "root", &out))

	require.NotNil(t, out.Owner)
	assert.Same(t, out.Owner, out.Link)
}

func TestCycles(t *testing.T) {
	t.Parallel()

	ctx := newContext()

	a := &Node{Name: "a"}
	b := &Node{Name: "b", Prev: a}
	c := &Node{Name: "c", Prev: b}
	a.Next, b.Next = b, c
	a.Prev = c
	a.Peers = []*Node{a, b, c}

	root := serialize(t, ctx, a)

	var out Node
	require.NoError(t, serde.Deserialize(ctx, tree.NewCursor(root), "root", &out))

	require.NotNil(t, out.Next)
	require.NotNil(t, out.Next.Next)
	assert.Equal(t, "b", out.Next.Name)
	assert.Equal(t, "c", out.Next.Next.Name)
	assert.Same(t, &out, out.Next.Prev)
	assert.Same(t, out.Next, out.Next.Next.Prev)
	assert.Same(t, out.Next.Next, out.Prev)
	require.Len(t, out.Peers, 3)
	assert.Same(t, &out, out.Peers[0])
	assert.Same(t, out.Next, out.Peers[1])
	assert.Same(t, out.Next.Next, out.Peers[2])
}

func TestSharedPointers(t *testing.T) {
	t.Parallel()

	ctx := newContext()
	item := &Item{N: 3}

	var report serde.Report
	root := serialize(t, ctx, Team{Lead: item, Backup: item}, serde.WithReport(&report))

	require.Len(t, report.Infos, 1)
	assert.Equal(t, diagnostic.CodeSharedLink, report.Infos[0].Code)
	assert.Equal(t, "root.Backup", report.Infos[0].Path)

	lead, backup := root.Child("Lead"), root.Child("Backup")
	assert.Equal(t, primitive.Bool(true), lead.Attribute("IsOwned").Value)
	assert.Equal(t, primitive.Bool(true), lead.Attribute("IsShared").Value)
	assert.NotNil(t, lead.Attribute("N"))
	assert.Equal(t, primitive.Bool(false), backup.Attribute("IsOwned").Value)
	assert.Equal(t, primitive.Bool(true), backup.Attribute("IsShared").Value)
	assert.Nil(t, backup.Attribute("N"))

	var out Team
	require.NoError(t, serde.Deserialize(ctx, tree.NewCursor(root), "root", &out))

	require.NotNil(t, out.Lead)
	assert.Equal(t, int32(3), out.Lead.N)
	assert.Same(t, out.Lead, out.Backup)
}

func TestDanglingReference(t *testing.T) {
	t.Parallel()

	ctx := newContext()

	var report serde.Report
	root := serialize(t, ctx, Pair{L1: &Item{N: 2}}, serde.WithReport(&report))
	assert.Equal(t, []string{diagnostic.CodeUnownedLink}, report.Codes())

	var out Pair
	err := serde.Deserialize(ctx, tree.NewCursor(root), "root", &out)
	require.ErrorIs(t, err, serde.ErrDanglingReference)
	assert.Contains(t, err.Error(), "Item")
}

func TestLinkTypeConflict(t *testing.T) {
	t.Parallel()

	ctx := newContext()
	item := &Item{N: 2}

	root := serialize(t, ctx, Pair{A: item, L1: item})
	require.True(t, tree.NewCursor(root.Child("L1")).SetValue("TypeName", primitive.String("Other")))

	var out Pair
	err := serde.Deserialize(ctx, tree.NewCursor(root), "root", &out)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, serde.ErrTypeMismatch))
	assert.Contains(t, err.Error(), "root.L1")
	assert.Contains(t, err.Error(), "Other")
}

func TestLinksInsideCopies(t *testing.T) {
	t.Parallel()

	ctx := newContext()
	first, second := &Item{N: 1}, &Item{N: 2}
	in := Index{
		Refs:  map[string]Ref{"x": {Target: first}, "y": {Target: second}},
		Owned: []*Item{first, second},
	}

	root := serialize(t, ctx, in)

	var out Index
	require.NoError(t, serde.Deserialize(ctx, tree.NewCursor(root), "root", &out))

	require.Len(t, out.Owned, 2)
	assert.Same(t, out.Owned[0], out.Refs["x"].Target)
	assert.Same(t, out.Owned[1], out.Refs["y"].Target)
}

func TestZeroSizeOwners(t *testing.T) {
	t.Parallel()

	ctx := newContext()

	root := serialize(t, ctx, TwoEmpty{A: new(Empty), B: new(Empty)})
	assert.NotEqual(t,
		root.Child("A").Attribute("InstanceID").Value,
		root.Child("B").Attribute("InstanceID").Value)

	var out TwoEmpty
	require.NoError(t, serde.Deserialize(ctx, tree.NewCursor(root), "root", &out))
	assert.NotNil(t, out.A)
	assert.NotNil(t, out.B)
	assert.Nil(t, out.L)

	shared := new(Empty)
	err := serde.Serialize(ctx, tree.NewCursor(tree.NewNode("")), "root", TwoEmpty{A: shared, L: shared})
	require.ErrorIs(t, err, serde.ErrUnsupported)
	assert.Contains(t, err.Error(), "root.L")
}
