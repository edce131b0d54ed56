// Package selector narrows a reactor to the projects one invocation builds.
//
// Partial builds name projects explicitly (-pl), pull in what they need
// (--also-make) or what needs them (--also-make-dependents), and resumed
// builds skip everything before a given project (--resume-from). The result
// is a whitelist wrapped in a [reactor.FilteredGraph], so an executor sees
// only the selected projects while dependency paths through hidden projects
// are preserved.
//
// # Selectors
//
// A selector names projects in one of three ways:
//
//	org.example:core   exact groupId:artifactId
//	:core              every project with artifactId "core"
//	modules/core       the project declared with that module path
//
// A leading '!' or '-' turns a selector into an exclusion, and a leading '?'
// makes it optional: an optional selector that matches nothing is reported in
// [Selection.Missing] instead of failing the selection.
package selector

import (
	"path"
	"slices"
	"strings"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
)

// Request describes which part of a reactor to build.
type Request struct {
	// Projects holds include and exclude selectors. Without any include
	// selector every project is included.
	Projects []string

	// AlsoMake adds the transitive dependencies of the included projects.
	AlsoMake bool

	// AlsoMakeDependents adds the transitive dependents of the included projects.
	AlsoMakeDependents bool

	// ResumeFrom drops the selected projects that come before this one in
	// build order.
	ResumeFrom string
}

// IsZero reports whether the request selects the whole reactor.
func (r Request) IsZero() bool {
	return len(r.Projects) == 0 && r.ResumeFrom == ""
}

// Selection is the outcome of [Select].
type Selection struct {
	// Graph is the view an executor should use: a [*reactor.FilteredGraph]
	// for partial builds, the full graph otherwise.
	Graph reactor.ProjectGraph

	// Projects are the selected projects in build order.
	Projects []reactor.Project

	// Missing lists optional selectors that matched no project.
	Missing []string
}

// ParseList splits a comma separated selector list, dropping blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type selector struct {
	raw      string
	expr     string
	exclude  bool
	optional bool
}

func parseSelector(raw string) selector {
	s := selector{raw: raw, expr: strings.TrimSpace(raw)}
	for len(s.expr) > 0 {
		switch s.expr[0] {
		case '!', '-':
			s.exclude = true
		case '?':
			s.optional = true
		default:
			return s
		}
		s.expr = s.expr[1:]
	}
	return s
}

// Select applies req to g.
//
// Selection happens in four steps: include selectors (plus also-make and
// also-make-dependents), resume-from, exclusions, and finally wrapping the
// survivors in a filtered graph. A required selector that matches nothing
// fails with NOT_FOUND; a selection that ends up empty fails with
// INVALID_INPUT.
func Select(g *reactor.Graph, req Request) (*Selection, error) {
	if g == nil {
		return nil, rerr.New(rerr.ErrCodeInvalidInput, "graph is nil")
	}
	if req.IsZero() {
		return &Selection{Graph: g, Projects: g.SortedProjects()}, nil
	}

	sel := &Selection{}
	var includes, excludes []selector
	for _, raw := range req.Projects {
		s := parseSelector(raw)
		if s.expr == "" {
			return nil, rerr.New(rerr.ErrCodeInvalidInput, "empty project selector %q", raw)
		}
		if s.exclude {
			excludes = append(excludes, s)
		} else {
			includes = append(includes, s)
		}
	}

	chosen := make(map[reactor.GA]bool)
	if len(includes) == 0 {
		for _, p := range g.AllProjects() {
			chosen[p.ID()] = true
		}
	}
	for _, s := range includes {
		matched, err := sel.resolve(g, s)
		if err != nil {
			return nil, err
		}
		for _, p := range matched {
			chosen[p.ID()] = true
			if err := expand(g, p, req, chosen); err != nil {
				return nil, err
			}
		}
	}

	var active []reactor.Project
	for _, p := range g.SortedProjects() {
		if chosen[p.ID()] {
			active = append(active, p)
		}
	}

	if req.ResumeFrom != "" {
		var err error
		if active, err = resume(g, active, req.ResumeFrom); err != nil {
			return nil, err
		}
	}

	for _, s := range excludes {
		matched, err := sel.resolve(g, s)
		if err != nil {
			return nil, err
		}
		active = slices.DeleteFunc(active, func(p reactor.Project) bool {
			return slices.ContainsFunc(matched, func(m reactor.Project) bool { return m.ID() == p.ID() })
		})
	}

	if len(active) == 0 {
		return nil, rerr.New(rerr.ErrCodeInvalidInput, "no projects selected")
	}

	filtered, err := reactor.NewFiltered(g, active)
	if err != nil {
		return nil, err
	}
	sel.Graph = filtered
	sel.Projects = active
	return sel, nil
}

func expand(g *reactor.Graph, p reactor.Project, req Request, chosen map[reactor.GA]bool) error {
	if req.AlsoMake {
		up, err := g.UpstreamProjects(p, true)
		if err != nil {
			return err
		}
		for _, q := range up {
			chosen[q.ID()] = true
		}
	}
	if req.AlsoMakeDependents {
		down, err := g.DownstreamProjects(p, true)
		if err != nil {
			return err
		}
		for _, q := range down {
			chosen[q.ID()] = true
		}
	}
	return nil
}

func resume(g *reactor.Graph, active []reactor.Project, expr string) ([]reactor.Project, error) {
	matched, err := Match(g, expr)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, rerr.New(rerr.ErrCodeNotFound, "cannot resume from %q: no such project in the reactor", expr)
	}
	for i, p := range active {
		if slices.ContainsFunc(matched, func(m reactor.Project) bool { return m.ID() == p.ID() }) {
			return active[i:], nil
		}
	}
	return nil, rerr.New(rerr.ErrCodeNotFound, "cannot resume from %q: project is not selected", expr)
}

func (sel *Selection) resolve(g *reactor.Graph, s selector) ([]reactor.Project, error) {
	matched, err := Match(g, s.expr)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		if s.optional {
			sel.Missing = append(sel.Missing, s.raw)
			return nil, nil
		}
		return nil, rerr.New(rerr.ErrCodeNotFound, "could not find the selected project %q in the reactor", s.expr)
	}
	return matched, nil
}

// Match returns the projects of g named by a single selector expression
// (without '!', '-' or '?' prefixes), in input order.
func Match(g *reactor.Graph, expr string) ([]reactor.Project, error) {
	switch {
	case strings.HasPrefix(expr, ":"):
		artifact := expr[1:]
		if err := rerr.ValidateCoordinate("artifactId", artifact); err != nil {
			return nil, err
		}
		var out []reactor.Project
		for _, p := range g.AllProjects() {
			if p.ID().ArtifactID == artifact {
				out = append(out, p)
			}
		}
		return out, nil

	case strings.Contains(expr, ":"):
		id, err := reactor.ParseGA(expr)
		if err != nil {
			return nil, err
		}
		if p, ok := g.Project(id); ok {
			return []reactor.Project{p}, nil
		}
		return nil, nil
	}

	want := cleanPath(expr)
	var out []reactor.Project
	for _, p := range g.AllProjects() {
		if l, ok := p.(reactor.Locator); ok && l.Location() != "" && cleanPath(l.Location()) == want {
			out = append(out, p)
		}
	}
	return out, nil
}

func cleanPath(p string) string {
	return strings.TrimSuffix(path.Clean(strings.TrimPrefix(p, "./")), "/")
}
