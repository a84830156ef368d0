package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagegrid/pagegrid/pkg/errors"
	pgio "github.com/pagegrid/pagegrid/pkg/io"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var showTree bool

	cmd := &cobra.Command{
		Use:   "inspect <layout.json>",
		Short: "Print a summary of a layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pgio.ImportFile(args[0])
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			fmt.Println(StyleTitle.Render(args[0]))
			printKeyValue("version", doc.Version)
			printKeyValue("columns", fmt.Sprintf("%d", doc.Grid.Columns))
			printKeyValue("breakpoints", strings.Join(doc.Grid.BreakpointNames(), ", "))
			printKeyValue("widgets", fmt.Sprintf("%d (%d roots)", widget.Count(doc.Widgets), len(doc.Widgets)))

			if showTree {
				printNewline()
				for _, w := range doc.Widgets {
					printTree(w, 0)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTree, "tree", false, "print the widget tree")
	return cmd
}

// printTree prints a widget and its children with indentation.
func printTree(w widget.Instance, depth int) {
	indent := strings.Repeat("  ", depth)
	pos := fmt.Sprintf("(%d,%d %dx%d)", w.Position.X, w.Position.Y, w.Position.Width, w.Position.Height)
	line := indent + StyleHighlight.Render(w.Type) + " " + StyleDim.Render(w.ID) + " " + StyleValue.Render(pos)
	if w.Locked {
		line += " " + StyleWarning.Render("locked")
	}
	fmt.Println(line)
	for _, child := range w.Children {
		printTree(child, depth+1)
	}
}
