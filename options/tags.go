package options

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrUnknownTag = errors.New("unknown member tag")

// TagEnum is a set of member annotations. Values combine with bitwise or.
type TagEnum int

const (
	TagIgnore     TagEnum = 1 << iota // skipped entirely in both directions
	TagLocal                          // process-local state, dropped by contexts built without local members
	TagGenerated                      // derived value: written for inspection, never read back
	TagDeprecated                     // legacy value: read when present, never written
	TagNotOwned                       // pointer written as a link to an instance owned elsewhere
	TagShared                         // pointer with cooperative owners, content written once per pass

	TagAll  TagEnum = (1 << iota) - 1 // all tags combined
	TagNone TagEnum = 0               // no tags selected
)

var tagNames = []struct {
	tag  TagEnum
	name string
}{
	{TagIgnore, "Ignore"},
	{TagLocal, "Local"},
	{TagGenerated, "Generated"},
	{TagDeprecated, "Deprecated"},
	{TagNotOwned, "NotOwned"},
	{TagShared, "Shared"},
}

// Has reports whether every bit of flag is set.
func (t TagEnum) Has(flag TagEnum) bool {
	return flag != TagNone && t&flag == flag
}

// With returns t extended with flag.
func (t TagEnum) With(flag TagEnum) TagEnum { return t | flag }

// Without returns t with flag cleared.
func (t TagEnum) Without(flag TagEnum) TagEnum { return t &^ flag }

// String renders the set as "Ignore|NotOwned", or "None" for the empty set.
func (t TagEnum) String() string {
	if t == TagNone {
		return "None"
	}

	var parts []string
	for _, tn := range tagNames {
		if t.Has(tn.tag) {
			parts = append(parts, tn.name)
		}
	}

	if rest := t &^ TagAll; rest != 0 {
		parts = append(parts, "TagEnum("+strconv.Itoa(int(rest))+")")
	}

	return strings.Join(parts, "|")
}

// ParseTags parses a comma or pipe separated list of tag names, case-insensitive.
// Empty items and "None" are skipped.
func ParseTags(s string) (TagEnum, error) {
	var out TagEnum

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || strings.EqualFold(f, "None") {
			continue
		}

		found := false
		for _, tn := range tagNames {
			if strings.EqualFold(f, tn.name) {
				out |= tn.tag
				found = true
				break
			}
		}

		if !found {
			return TagNone, errors.Wrapf(ErrUnknownTag, "%q", f)
		}
	}

	return out, nil
}
