package match

import (
	"strings"
	"unicode"
)

// Normalize folds case and drops separators and a package qualifier, so that
// "pkg.Simple_Base", "simple-base" and "SimpleBase" compare equal.
func Normalize(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
