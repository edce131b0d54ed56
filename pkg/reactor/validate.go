package reactor

import (
	"slices"

	rerr "github.com/matzehuels/reactor/pkg/errors"
)

// register indexes projects by identity in input order. The second
// occurrence of an identity fails construction.
func (g *Graph) register(projects []Project) error {
	g.projects = make([]Project, 0, len(projects))
	g.index = make(map[GA]int, len(projects))

	for i, p := range projects {
		if p == nil {
			return rerr.New(rerr.ErrCodeInvalidInput, "project at index %d is nil", i)
		}
		id := p.ID()
		if id.IsZero() {
			return rerr.New(rerr.ErrCodeInvalidInput, "project at index %d has no identity", i)
		}
		if first, dup := g.index[id]; dup {
			err := &DuplicateProjectError{
				ID:     id,
				First:  locate(g.projects[first], first),
				Second: locate(p, i),
			}
			return rerr.Wrap(rerr.ErrCodeDuplicateProject, err, "duplicate project %s", id)
		}
		g.index[id] = i
		g.projects = append(g.projects, p)
	}
	return nil
}

// link turns declared dependencies into edges. References to identities
// outside the reactor are dropped, and a dependency declared twice yields a
// single edge.
func (g *Graph) link() {
	n := len(g.projects)
	g.upstream = make([][]int, n)
	g.downstream = make([][]int, n)

	for from, p := range g.projects {
		var linked []int
		for _, dep := range p.Dependencies() {
			to, ok := g.index[dep]
			if !ok || slices.Contains(linked, to) {
				continue
			}
			linked = append(linked, to)
			g.downstream[to] = append(g.downstream[to], from)
			g.edges = append(g.edges, Edge{From: p.ID(), To: dep})
		}
		g.upstream[from] = linked
	}
}

// detectCycles walks the forward adjacency depth-first, projects in input
// order and dependencies in declaration order, and reports the first back
// edge as the cycle it closes.
func (g *Graph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(g.projects))
	var path, cycle []int

	var visit func(i int) bool
	visit = func(i int) bool {
		color[i] = gray
		path = append(path, i)
		for _, dep := range g.upstream[i] {
			switch color[dep] {
			case white:
				if visit(dep) {
					return true
				}
			case gray:
				start := slices.Index(path, dep)
				cycle = append(slices.Clone(path[start:]), dep)
				return true
			}
		}
		path = path[:len(path)-1]
		color[i] = black
		return false
	}

	for i := range g.projects {
		if color[i] == white && visit(i) {
			ids := make([]GA, len(cycle))
			for j, k := range cycle {
				ids[j] = g.projects[k].ID()
			}
			return rerr.Wrap(rerr.ErrCodeCycleDetected, &CycleError{Path: ids}, "dependency cycle in reactor")
		}
	}
	return nil
}
