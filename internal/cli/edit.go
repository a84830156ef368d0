package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pagegrid/pagegrid/pkg/engine"
	"github.com/pagegrid/pagegrid/pkg/errors"
	"github.com/pagegrid/pagegrid/pkg/grid"
	pgio "github.com/pagegrid/pagegrid/pkg/io"
	"github.com/pagegrid/pagegrid/pkg/layout"
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "edit <layout.json>",
		Short: "Open a layout in the interactive terminal editor",
		Long: `Edit opens a layout document in a terminal editor backed by the layout
engine: widgets can be added from the catalog palette, moved, resized,
duplicated, locked, and removed, with bounded undo/redo.

If the file does not exist, editing starts from an empty document with the
default grid and the file is created on save.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			doc := layout.New(grid.DefaultConfig())
			if _, err := os.Stat(path); err == nil {
				var ierr error
				doc, ierr = pgio.ImportFile(path)
				if ierr != nil {
					printError("%s", errors.UserMessage(ierr))
					return ierr
				}
			}

			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			eng := engine.New(
				engine.WithLayout(doc),
				engine.WithCatalog(cat),
				engine.WithLogger(c.Logger),
			)

			m := newEditorModel(eng, cat, path)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}

			if em, ok := final.(editorModel); ok && em.saved {
				printSuccess("Saved %s", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "widget catalog TOML file")
	return cmd
}
