// Package widgetgraph renders the widget containment tree of a layout
// document as a Graphviz node-link diagram.
//
// The containment graph has one node per widget instance and one edge from
// each container to each of its children. Root widgets attach to a synthetic
// page node so disconnected roots still render as a single diagram.
package widgetgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pagegrid/pagegrid/pkg/layout"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// pageNodeID is the synthetic root node all top-level widgets attach to.
const pageNodeID = "__page__"

// Options configures containment graph rendering.
type Options struct {
	// Detailed includes grid position and lock state in node labels.
	// When false, only the widget type is shown.
	Detailed bool
}

// ToDOT converts a layout document to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Locked widgets are rendered with grey fill, container widgets with a
// doubled outline.
func ToDOT(doc layout.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=\"page\", shape=box, style=\"filled\", fillcolor=lightyellow];\n", pageNodeID)

	for _, w := range widget.Flatten(doc.Widgets) {
		label := fmtLabel(w, opts.Detailed)
		attrs := fmtAttrs(w, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", w.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, root := range doc.Widgets {
		fmt.Fprintf(&buf, "  %q -> %q;\n", pageNodeID, root.ID)
	}
	for _, w := range widget.Flatten(doc.Widgets) {
		for _, child := range w.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", w.ID, child.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(w widget.Instance, detailed bool) string {
	if !detailed {
		return w.Type
	}

	parts := []string{
		fmt.Sprintf("at: %d,%d", w.Position.X, w.Position.Y),
		fmt.Sprintf("size: %dx%d", w.Position.Width, w.Position.Height),
	}
	if w.Locked {
		parts = append(parts, "locked")
	}

	return w.Type + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(w widget.Instance, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case w.Locked:
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=black")
	case len(w.Children) > 0:
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the outer svg tag so the viewBox starts at the
// origin and explicit pixel dimensions are set. Graphviz emits points and a
// translated viewBox, which confuses some embedders.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
