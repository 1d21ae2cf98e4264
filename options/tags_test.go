package options_test

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objtree/options"
)

func ExampleTagEnum() {
	tags := options.TagNotOwned | options.TagDeprecated
	fmt.Println(tags)
	fmt.Println(tags.Has(options.TagNotOwned), tags.Has(options.TagIgnore))
	fmt.Println(tags.Without(options.TagDeprecated))
	fmt.Println(options.TagEnum(options.TagNone))

	// Output:
	// Deprecated|NotOwned
	// true false
	// NotOwned
	// None
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want options.TagEnum
	}{
		{"", options.TagNone},
		{"None", options.TagNone},
		{"ignore", options.TagIgnore},
		{"NotOwned,Deprecated", options.TagNotOwned | options.TagDeprecated},
		{"Local | Generated", options.TagLocal | options.TagGenerated},
		{"shared,,", options.TagShared},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := options.ParseTags(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := options.ParseTags("Ignore,Owned")
	require.Error(t, err)
	assert.True(t, errors.Is(err, options.ErrUnknownTag))
}

func TestHasEmptyFlag(t *testing.T) {
	t.Parallel()

	assert.False(t, options.TagAll.Has(options.TagNone))
	assert.True(t, options.TagAll.Has(options.TagShared|options.TagIgnore))
}
