// Package render draws layouts as diagrams.
//
// The [dot] subpackage turns objects into Graphviz DOT source and renders
// it to SVG. [ToPDF] and [ToPNG] convert any SVG to other formats with the
// external rsvg-convert tool (from librsvg).
//
//	src := dot.ToDOT(layout, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//	png, err := render.ToPNG(svg, 2.0)
//
// [dot]: github.com/matzehuels/agptools/pkg/render/dot
package render
