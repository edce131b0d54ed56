package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the groupId, version and module path to node labels.
	// When false, only the artifactId is shown.
	Detailed bool

	// Numbered prefixes labels with the project's position in the build order.
	Numbered bool
}

// ToDOT converts a reactor graph to Graphviz DOT source.
// g must be a [*reactor.Graph] or a [*reactor.FilteredGraph].
func ToDOT(g reactor.ProjectGraph, opts Options) (string, error) {
	full, visible, err := unwrap(g)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph reactor {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	pos := 0
	for _, p := range full.SortedProjects() {
		shown := visible(p)
		if shown {
			pos++
		}
		label := fmtLabel(p, opts, shown, pos)
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID().String(), strings.Join(fmtAttrs(label, shown), ", "))
	}

	buf.WriteString("\n")
	for _, e := range full.Edges() {
		attrs := ""
		from, _ := full.Project(e.From)
		to, _ := full.Project(e.To)
		if !visible(from) || !visible(to) {
			attrs = " [style=dashed, color=grey]"
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.From.String(), e.To.String(), attrs)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func unwrap(g reactor.ProjectGraph) (*reactor.Graph, func(reactor.Project) bool, error) {
	switch v := g.(type) {
	case *reactor.Graph:
		return v, func(reactor.Project) bool { return true }, nil
	case *reactor.FilteredGraph:
		return v.Unwrap(), v.Whitelisted, nil
	case nil:
		return nil, nil, rerr.New(rerr.ErrCodeInvalidInput, "graph is nil")
	}
	return nil, nil, rerr.New(rerr.ErrCodeUnsupported, "cannot render graph of type %T", g)
}

func fmtLabel(p reactor.Project, opts Options, shown bool, pos int) string {
	id := p.ID()
	label := id.ArtifactID
	if opts.Numbered && shown {
		label = fmt.Sprintf("%d. %s", pos, label)
	}
	if !opts.Detailed {
		return label
	}

	lines := []string{label, id.GroupID}
	if d, ok := p.(*reactor.Descriptor); ok && d.Version != "" {
		lines = append(lines, "version: "+d.Version)
	}
	if l, ok := p.(reactor.Locator); ok && l.Location() != "" {
		lines = append(lines, "path: "+l.Location())
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(label string, shown bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !shown {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey30")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	data, err := renderDOT(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, rerr.Wrap(rerr.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, rerr.Wrap(rerr.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, rerr.Wrap(rerr.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// width and height match the viewBox, so the SVG scales in browsers.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
