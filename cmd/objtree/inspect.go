package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"objtree/internal/config"
	"objtree/tree"
)

func (a *app) inspectCommand() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "print the outline of a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.readTree(args[0])
			if err != nil {
				return err
			}

			if dump {
				spewConfig.Fdump(a.out, b.Tree().Document())
				return nil
			}

			outline(a.out, b.Tree(), a.cfg.Inspect.MaxDepth)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the full document structure instead of the outline")
	cmd.Flags().Int("max-depth", 0, "deepest level printed, 0 prints everything")
	a.bind(cmd.Flags().Lookup("max-depth"), config.KeyInspectMaxDepth)

	return cmd
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// outline prints one line per node: the name followed by its attributes.
// Subtrees below maxDepth are folded into "...".
func outline(w io.Writer, root *tree.Node, maxDepth int) {
	root.Walk(func(n *tree.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)

		var line strings.Builder
		line.WriteString(indent)
		line.WriteString(n.Name())

		for _, attr := range n.Attributes() {
			fmt.Fprintf(&line, " %s=%s", attr.Name, attr.Value.Text())
		}

		fmt.Fprintln(w, line.String())

		if maxDepth > 0 && depth >= maxDepth && n.NumChildren() > 0 {
			fmt.Fprintf(w, "%s  ... %d more\n", indent, n.Count()-1)
			return false
		}

		return true
	})

	fmt.Fprintf(w, "nodes: %d\n", root.Count())
}
