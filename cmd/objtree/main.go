// Package main provides the CLI entrypoint for objtree.
//
// objtree works on persisted object trees without knowing the Go types that
// produced them:
//   - convert rewrites a tree from one backend format into another
//   - inspect prints the outline of a tree, or a full dump of it
//   - version prints the build version
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
