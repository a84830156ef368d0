package cli

import (
	"github.com/spf13/cobra"

	"github.com/pagegrid/pagegrid/pkg/errors"
	pgio "github.com/pagegrid/pagegrid/pkg/io"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "validate <layout.json>",
		Short: "Validate a layout document",
		Long: `Validate checks a layout document against the grid configuration and
widget rules: version compatibility, breakpoint ordering, unique widget IDs,
well-formed positions and responsive overrides, and the root widget cap.

With --catalog, widget types are additionally checked against the catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)

			doc, err := pgio.ImportFile(args[0])
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			if catalogPath != "" {
				cat, err := loadCatalog(catalogPath)
				if err != nil {
					return err
				}
				for _, w := range widget.Flatten(doc.Widgets) {
					if !cat.Has(w.Type) {
						printWarning("widget %s has unknown type %q", w.ID, w.Type)
					}
				}
			}

			prog.done("Validated layout")
			printSuccess("%s is valid", args[0])
			printStats(widget.Count(doc.Widgets), len(doc.Widgets), false)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "widget catalog TOML file to check types against")
	return cmd
}
