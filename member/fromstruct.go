package member

import (
	"reflect"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"objtree/options"
)

// StructTag is the struct tag read by FromStruct:
//
//	Name  string `objtree:"Title"`            // renamed
//	Cache []byte `objtree:",Local|Generated"` // tagged, name kept
//	Skip  int    `objtree:"-"`                // not a member
const StructTag = "objtree"

var ErrNotStruct = errors.New("type is not a struct")

// FromStruct lists the exported fields of t as members, promoted fields of
// embedded structs included in declaration order. The member name comes from
// the objtree tag, then the json tag, then the field name. Fields promoted
// through embedded pointers are skipped.
func FromStruct(t reflect.Type) ([]Member, error) {
	if t.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrNotStruct, "%s", t)
	}

	var (
		out    []Member
		pruned [][]int // embedded structs whose promoted fields are not listed
	)

	for _, f := range reflect.VisibleFields(t) {
		if underAny(f.Index, pruned) || throughPointer(t, f.Index) {
			continue
		}

		_, tagged := f.Tag.Lookup(StructTag)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if !tagged || !f.IsExported() {
				continue
			}

			// tagged embedded struct is a single member
			pruned = append(pruned, f.Index)
		}

		if !f.IsExported() {
			continue
		}

		name, tags, skip, err := parseStructTag(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", t, f.Name)
		}

		if skip {
			if f.Anonymous {
				pruned = append(pruned, f.Index)
			}

			continue
		}

		out = append(out, Member{
			Name:     name,
			Tags:     tags,
			Accessor: fieldAccessor{index: f.Index, typ: f.Type},
			owner:    t,
		})
	}

	return out, nil
}

func parseStructTag(f reflect.StructField) (name string, tags options.TagEnum, skip bool, err error) {
	tag, ok := f.Tag.Lookup(StructTag)
	if tag == "-" {
		return "", options.TagNone, true, nil
	}

	name = f.Name
	if ok {
		head, rest, _ := strings.Cut(tag, ",")
		if head != "" {
			name = head
		}

		tags, err = options.ParseTags(rest)
		if err != nil {
			return "", options.TagNone, false, err
		}
	} else if j := jsonTagName(f); j != "" {
		name = j
	}

	return name, tags, false, nil
}

func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}

	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}

	return tag
}

func underAny(index []int, prefixes [][]int) bool {
	for _, p := range prefixes {
		if len(index) > len(p) && slices.Equal(index[:len(p)], p) {
			return true
		}
	}

	return false
}

// throughPointer reports whether index crosses an embedded pointer.
func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Pointer {
			return true
		}

		t = f.Type
	}

	return false
}
