package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"a", "a", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"ABC", "abc", 3},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a))
		})
	}
}

func TestNormalize(t *testing.T) {
	for _, in := range []string{"SimpleBase", "simple_base", "Simple-Base", "pkg.SimpleBase"} {
		assert.Equal(t, "simplebase", Normalize(in), in)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("OrderID", "order_id"))
	assert.InDelta(t, 0.5, Similarity("abcd", "abxy"), 1e-9)
}

func ExampleSuggest() {
	names := []string{"SimpleDerivedOne", "SimpleDerivedTwo", "Unrelated"}

	fmt.Println(Suggest("SimpleDerivedOen", names, 1))
	fmt.Println(Suggest("Nothing", names, 3))

	// Output:
	// [SimpleDerivedOne]
	// []
}
