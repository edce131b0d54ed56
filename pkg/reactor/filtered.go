package reactor

import "slices"

// FilteredGraph is a read-only view of a [Graph] restricted to a whitelist of
// projects, used for partial and resumed builds.
//
// Projects outside the whitelist are hidden but stay transparent: a
// dependency path that runs through them still connects the whitelisted
// projects at either end. For example, with c → b → a and a whitelist of
// {a, c}, c's upstream projects are [a].
//
// A FilteredGraph holds a reference to the wrapped graph and the whitelist,
// nothing else. It is safe for concurrent use.
type FilteredGraph struct {
	graph   *Graph
	members []bool // input index -> whitelisted
	size    int
}

var _ ProjectGraph = (*FilteredGraph)(nil)

// NewFiltered wraps g with the given whitelist. Every whitelist member must be
// a project of g, otherwise NewFiltered fails with UNKNOWN_PROJECT.
// Repeated members are ignored.
func NewFiltered(g *Graph, whitelist []Project) (*FilteredGraph, error) {
	if g == nil {
		return nil, errNilGraph
	}
	f := &FilteredGraph{graph: g, members: make([]bool, g.Len())}
	for _, p := range whitelist {
		i, err := g.mustHave(p)
		if err != nil {
			return nil, err
		}
		if !f.members[i] {
			f.members[i] = true
			f.size++
		}
	}
	return f, nil
}

// Unwrap returns the full graph behind the view.
func (f *FilteredGraph) Unwrap() *Graph { return f.graph }

// Len returns the number of whitelisted projects.
func (f *FilteredGraph) Len() int { return f.size }

// Whitelisted reports whether p is part of the view.
func (f *FilteredGraph) Whitelisted(p Project) bool {
	i, ok := f.graph.lookup(p)
	return ok && f.members[i]
}

// AllProjects returns every project of the wrapped graph in input order,
// whitelisted or not.
func (f *FilteredGraph) AllProjects() []Project { return f.graph.AllProjects() }

// SortedProjects returns the whitelisted projects in the wrapped graph's
// build order.
func (f *FilteredGraph) SortedProjects() []Project {
	out := make([]Project, 0, f.size)
	for _, i := range f.graph.sorted {
		if f.members[i] {
			out = append(out, f.graph.projects[i])
		}
	}
	return out
}

// UpstreamProjects returns the whitelisted projects p depends on, looking
// through hidden projects. Without transitive, the walk stops at the first
// whitelisted project on each path. Fails with UNKNOWN_PROJECT if p is not
// whitelisted.
func (f *FilteredGraph) UpstreamProjects(p Project, transitive bool) ([]Project, error) {
	return f.related(p, upstream, transitive)
}

// DownstreamProjects returns the whitelisted projects depending on p,
// looking through hidden projects. Without transitive, the walk stops at the
// first whitelisted project on each path. Fails with UNKNOWN_PROJECT if p is
// not whitelisted.
func (f *FilteredGraph) DownstreamProjects(p Project, transitive bool) ([]Project, error) {
	return f.related(p, downstream, transitive)
}

func (f *FilteredGraph) related(p Project, dir direction, transitive bool) ([]Project, error) {
	start, ok := f.graph.lookup(p)
	if !ok || !f.members[start] {
		return nil, unknownProject(p)
	}

	adj := f.graph.adjacency(dir)
	visited := make([]bool, f.graph.Len())
	visited[start] = true
	stack := slices.Clone(adj[start])

	var found []int
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[i] {
			continue
		}
		visited[i] = true

		if f.members[i] {
			found = append(found, i)
			if !transitive {
				continue
			}
		}
		// hidden projects are always bridged
		stack = append(stack, adj[i]...)
	}
	return f.graph.handles(f.graph.inBuildOrder(found)), nil
}
