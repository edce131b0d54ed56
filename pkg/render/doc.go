// Package render draws reactor graphs.
//
// # Overview
//
// [ToDOT] converts a [reactor.ProjectGraph] into Graphviz DOT source. For a
// [reactor.FilteredGraph] the whole reactor is drawn and the projects outside
// the selection are greyed out with dashed outlines, so a partial build can be
// read in context.
//
//	dot, err := render.ToDOT(g, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(dot)
//	png, err := render.RenderPNG(dot)
//
// # Layout
//
// Edges point from a project to its dependencies and the layout runs bottom
// to top (rankdir=BT), so the first modules of the build order sit at the
// bottom of the picture and everything rests on what it needs.
//
// # Dependencies
//
// SVG and PNG output use [github.com/goccy/go-graphviz], which embeds Graphviz
// and needs no external tools.
package render
