// Package dot renders layouts as Graphviz diagrams.
//
// Every object becomes a cluster whose records are chained left to right:
// components as boxes shaded by orientation, gaps as dashed ellipses
// labeled with their length. [ToDOT] produces the DOT source and
// [RenderSVG] lays it out with the embedded Graphviz.
//
//	src := dot.ToDOT(layout, dot.Options{Objects: []string{"scaffold_18"}})
//	svg, err := dot.RenderSVG(ctx, src)
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/agptools/pkg/agp"
	"github.com/matzehuels/agptools/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Objects restricts the diagram to the named objects. Empty means all.
	Objects []string
	// Detailed adds object coordinates to every label.
	Detailed bool
}

var fill = map[agp.Orientation]string{
	agp.Plus:    "#d8ecff",
	agp.Minus:   "#ffe2cc",
	agp.Unknown: "white",
}

// ToDOT converts a layout to Graphviz DOT source.
func ToDOT(l *agp.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")

	for i, obj := range selected(l, opts.Objects) {
		writeObject(&buf, i, obj, opts.Detailed)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func selected(l *agp.Layout, names []string) []*agp.Object {
	if len(names) == 0 {
		return l.Objects()
	}
	var objs []*agp.Object
	for _, n := range names {
		if obj, ok := l.Get(n); ok {
			objs = append(objs, obj)
		}
	}
	return objs
}

func writeObject(buf *bytes.Buffer, idx int, obj *agp.Object, detailed bool) {
	fmt.Fprintf(buf, "\n  subgraph cluster_%d {\n", idx)
	fmt.Fprintf(buf, "    label=%q;\n", fmt.Sprintf("%s (%d bp)", obj.Name(), obj.Len()))
	buf.WriteString("    style=rounded;\n")

	ids := make([]string, obj.Count())
	for i, r := range obj.Records() {
		ids[i] = fmt.Sprintf("%s#%d", obj.Name(), r.Part)
		fmt.Fprintf(buf, "    %q [%s];\n", ids[i], strings.Join(attrs(r, detailed), ", "))
	}
	if len(ids) > 1 {
		quoted := make([]string, len(ids))
		for i, id := range ids {
			quoted[i] = strconv.Quote(id)
		}
		fmt.Fprintf(buf, "    %s;\n", strings.Join(quoted, " -> "))
	}
	buf.WriteString("  }\n")
}

func attrs(r agp.Record, detailed bool) []string {
	var label string
	var out []string
	switch p := r.Payload.(type) {
	case agp.Component:
		label = fmt.Sprintf("%s %s\n%d-%d", p.ID, p.OrientationToken(), p.Start, p.End)
		out = append(out, fmt.Sprintf("fillcolor=%q", fill[p.Orientation]))
	case agp.Gap:
		label = fmt.Sprintf("%s %d", p.TypeLetter(), p.Length)
		out = append(out, "shape=ellipse", "style=\"dashed,filled\"", "fillcolor=lightgrey")
	}
	if detailed {
		label += fmt.Sprintf("\n[%d-%d]", r.Start, r.End)
	}
	return append([]string{fmt.Sprintf("label=%q", label)}, out...)
}

// RenderSVG lays out DOT source with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
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

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose width and height match the viewBox, so browsers scale it cleanly.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	head := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(head))
}

// Render produces the diagram in format "svg", "pdf" or "png". PDF and PNG
// need rsvg-convert on the PATH.
func Render(ctx context.Context, l *agp.Layout, opts Options, format string) ([]byte, error) {
	svg, err := RenderSVG(ctx, ToDOT(l, opts))
	if err != nil {
		return nil, err
	}
	switch format {
	case "svg", "":
		return svg, nil
	case "pdf":
		return render.ToPDF(svg)
	case "png":
		return render.ToPNG(svg, 2.0)
	}
	return nil, fmt.Errorf("invalid format: %q (must be one of: svg, pdf, png)", format)
}
