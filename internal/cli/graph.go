package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagegrid/pagegrid/pkg/cache"
	"github.com/pagegrid/pagegrid/pkg/errors"
	pgio "github.com/pagegrid/pagegrid/pkg/io"
	"github.com/pagegrid/pagegrid/pkg/render/widgetgraph"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// graphCacheTTL bounds how long rendered graphs stay cached. SVG rendering
// shells into graphviz, so hits are worth keeping longer than cell geometry.
const graphCacheTTL = 7 * 24 * time.Hour

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		detailed bool
		noCache  bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "graph <layout.json>",
		Short: "Render the widget containment tree as DOT or SVG",
		Args:  cobra.ExactArgs(1),
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

			if format != "dot" && format != "svg" {
				return errors.New(errors.ErrCodeInvalidInput, "unsupported format %q (want dot or svg)", format)
			}

			var out []byte
			cached := false

			dot := widgetgraph.ToDOT(doc, widgetgraph.Options{Detailed: detailed})
			if format == "dot" {
				out = []byte(dot)
			} else {
				store, err := newCache(noCache)
				if err != nil {
					return err
				}
				defer store.Close()

				key := cache.GraphKey(cache.DocHash(data), format, detailed)
				if hit, ok, err := store.Get(ctx, key); err == nil && ok {
					out = hit
					cached = true
				} else {
					out, err = widgetgraph.RenderSVG(ctx, dot)
					if err != nil {
						return err
					}
					if err := store.Set(ctx, key, out, graphCacheTTL); err != nil {
						c.Logger.Debug("cache write failed", "err", err)
					}
				}
			}

			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				printFile(output)
			} else {
				fmt.Print(string(out))
			}

			prog.done(fmt.Sprintf("Rendered %s graph", format))
			printStats(widget.Count(doc.Widgets), len(doc.Widgets), cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include positions and lock state in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the computation cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to file instead of stdout")
	return cmd
}
