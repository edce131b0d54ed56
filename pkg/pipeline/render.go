package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/reactor/pkg/io"
	"github.com/matzehuels/reactor/pkg/reactor"
	"github.com/matzehuels/reactor/pkg/render"
)

// RenderFormat renders the selected plan of result in opts.Format, without
// caching.
func RenderFormat(result *Result, opts Options) ([]byte, error) {
	view := result.View()
	switch opts.Format {
	case FormatText:
		return renderText(view), nil
	case FormatJSON:
		plan, err := io.NewPlan(view)
		if err != nil {
			return nil, err
		}
		plan.ID = result.ID.String()
		plan.Sort = opts.Sort
		var buf bytes.Buffer
		if err := plan.Encode(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot, err := render.ToDOT(view, render.Options{Detailed: opts.Detailed, Numbered: true})
	if err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return render.RenderSVG(dot)
	case FormatPNG:
		return render.RenderPNG(dot)
	}
	return nil, ValidateFormat(opts.Format)
}

// renderText lists the build order, one project per line:
//
//	1. org.example:api:1.0.0
//	2. org.example:core:1.0.0
func renderText(g reactor.ProjectGraph) []byte {
	var buf bytes.Buffer
	for i, p := range g.SortedProjects() {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, label(p))
	}
	return buf.Bytes()
}

func label(p reactor.Project) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return p.ID().String()
}
