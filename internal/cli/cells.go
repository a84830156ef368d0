package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagegrid/pagegrid/pkg/cache"
	"github.com/pagegrid/pagegrid/pkg/errors"
	pgio "github.com/pagegrid/pagegrid/pkg/io"
	"github.com/pagegrid/pagegrid/pkg/layout"
)

// cellsCacheTTL bounds how long computed cell geometry stays cached.
const cellsCacheTTL = 24 * time.Hour

// cellsCommand creates the cells command.
func (c *CLI) cellsCommand() *cobra.Command {
	var (
		breakpoint string
		optimize   bool
		noCache    bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "cells <layout.json>",
		Short: "Compute absolute cell geometry for a breakpoint",
		Long: `Cells resolves every root widget to its effective position at the given
breakpoint and prints the resulting cell list as JSON. With --optimize the
cells are additionally pushed apart until no two overlap.

Results are cached by document content hash; use --no-cache to force
recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(c.Logger)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read layout: %w", err)
			}
			doc, err := pgio.ReadJSON(bytes.NewReader(data))
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			bp, ok := doc.Grid.Breakpoint(breakpoint)
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "breakpoint %q not defined", breakpoint)
			}

			store, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			key := cache.CellsKey(cache.DocHash(data), breakpoint, optimize)

			var out []byte
			cached := false
			if hit, ok, err := store.Get(ctx, key); err == nil && ok {
				out = hit
				cached = true
			} else {
				cells := layout.ToCells(doc.Widgets, bp, doc.Grid)
				if optimize {
					var moved int
					cells, moved = layout.Optimize(ctx, cells)
					if moved > 0 {
						c.Logger.Debug("resolved overlaps", "moved", moved)
					}
				}
				out, err = json.MarshalIndent(cells, "", "  ")
				if err != nil {
					return fmt.Errorf("encode cells: %w", err)
				}
				if err := store.Set(ctx, key, out, cellsCacheTTL); err != nil {
					c.Logger.Debug("cache write failed", "err", err)
				}
			}

			if output != "" {
				if err := os.WriteFile(output, append(out, '\n'), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				printFile(output)
			} else {
				fmt.Println(string(out))
			}

			prog.done(fmt.Sprintf("Computed cells for %s", breakpoint))
			printStats(len(doc.Widgets), 0, cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&breakpoint, "breakpoint", "b", "desktop", "breakpoint name to resolve")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "push overlapping cells apart")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the computation cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to file instead of stdout")
	return cmd
}
