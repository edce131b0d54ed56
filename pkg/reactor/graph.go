package reactor

import (
	"cmp"
	"slices"

	rerr "github.com/matzehuels/reactor/pkg/errors"
)

// ProjectGraph is the query surface shared by [Graph] and [FilteredGraph].
// A reactor executor only needs this interface: it builds a module once every
// member of UpstreamProjects(module, false) has completed.
type ProjectGraph interface {
	// AllProjects returns every project of the reactor in input order,
	// including projects a filtered view hides.
	AllProjects() []Project

	// SortedProjects returns the projects of this view in build order:
	// every project appears after all of its dependencies.
	SortedProjects() []Project

	// UpstreamProjects returns the dependencies of p, direct only or the
	// full transitive closure, in build order and without p itself.
	UpstreamProjects(p Project, transitive bool) ([]Project, error)

	// DownstreamProjects returns the dependents of p, direct only or the
	// full transitive closure, in build order and without p itself.
	DownstreamProjects(p Project, transitive bool) ([]Project, error)
}

// Edge is a directed dependency: From depends on To.
type Edge struct {
	From GA
	To   GA
}

// Option configures graph construction.
type Option func(*options)

type options struct {
	sort SortStrategy
}

// WithSortStrategy selects the algorithm producing SortedProjects.
// The default is [SortKahn].
func WithSortStrategy(s SortStrategy) Option {
	return func(o *options) { o.sort = s }
}

// Graph is the full reactor: every project of one build invocation, the
// dependency edges between them, and their build order.
//
// A Graph is immutable once [New] returns and is safe for concurrent use by
// multiple goroutines. Query results are memoized per graph.
type Graph struct {
	projects   []Project  // input order
	index      map[GA]int // identity -> input index
	upstream   [][]int    // input index -> dependencies (forward adjacency)
	downstream [][]int    // input index -> dependents (reverse adjacency)
	edges      []Edge     // declaration order
	sorted     []int      // input indices in build order
	rank       []int      // input index -> position in sorted
	cache      *closureCache
}

var _ ProjectGraph = (*Graph)(nil)

// New validates projects and builds the reactor graph.
//
// Construction registers every project by identity, links declared
// dependencies that resolve to registered projects, rejects cycles, and
// computes the build order. It fails with:
//   - DUPLICATE_PROJECT if two projects share an identity (cause [*DuplicateProjectError])
//   - CYCLE_DETECTED if the dependencies contain a cycle (cause [*CycleError])
//   - INVALID_INPUT if a project handle is nil or has an empty identity
//
// Construction is all-or-nothing: on error the returned graph is nil.
func New(projects []Project, opts ...Option) (*Graph, error) {
	o := options{sort: SortKahn}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Graph{cache: newClosureCache()}
	if err := g.register(projects); err != nil {
		return nil, err
	}
	g.link()
	if err := g.detectCycles(); err != nil {
		return nil, err
	}

	sorted, err := g.sort(o.sort)
	if err != nil {
		return nil, err
	}
	g.sorted = sorted
	g.rank = make([]int, len(sorted))
	for pos, i := range sorted {
		g.rank[i] = pos
	}
	return g, nil
}

// Len returns the number of projects in the graph.
func (g *Graph) Len() int { return len(g.projects) }

// AllProjects returns the projects in input order.
func (g *Graph) AllProjects() []Project { return slices.Clone(g.projects) }

// SortedProjects returns the projects in build order.
func (g *Graph) SortedProjects() []Project { return g.handles(g.sorted) }

// Edges returns the dependency edges in declaration order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Project returns the project registered under id.
func (g *Graph) Project(id GA) (Project, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.projects[i], true
}

// Contains reports whether p's identity is registered in the graph.
func (g *Graph) Contains(p Project) bool {
	_, ok := g.lookup(p)
	return ok
}

// UpstreamProjects returns the projects p depends on. With transitive set,
// the dependencies of those projects are included as well.
// Fails with UNKNOWN_PROJECT if p is not in the graph.
func (g *Graph) UpstreamProjects(p Project, transitive bool) ([]Project, error) {
	return g.related(p, upstream, transitive)
}

// DownstreamProjects returns the projects depending on p. With transitive
// set, their dependents are included as well.
// Fails with UNKNOWN_PROJECT if p is not in the graph.
func (g *Graph) DownstreamProjects(p Project, transitive bool) ([]Project, error) {
	return g.related(p, downstream, transitive)
}

func (g *Graph) lookup(p Project) (int, bool) {
	if p == nil {
		return 0, false
	}
	i, ok := g.index[p.ID()]
	return i, ok
}

func (g *Graph) adjacency(dir direction) [][]int {
	if dir == upstream {
		return g.upstream
	}
	return g.downstream
}

// inBuildOrder sorts input indices by their position in the build order.
func (g *Graph) inBuildOrder(idx []int) []int {
	slices.SortFunc(idx, func(a, b int) int { return cmp.Compare(g.rank[a], g.rank[b]) })
	return idx
}

func (g *Graph) handles(idx []int) []Project {
	out := make([]Project, len(idx))
	for i, j := range idx {
		out[i] = g.projects[j]
	}
	return out
}

func (g *Graph) related(p Project, dir direction, transitive bool) ([]Project, error) {
	start, ok := g.lookup(p)
	if !ok {
		return nil, unknownProject(p)
	}

	key := closureKey{id: g.projects[start].ID(), dir: dir, transitive: transitive}
	idx, hit := g.cache.get(key)
	if !hit {
		idx = g.closure(start, dir, transitive)
		g.cache.put(key, idx)
	}
	return g.handles(idx), nil
}

func (g *Graph) closure(start int, dir direction, transitive bool) []int {
	adj := g.adjacency(dir)
	if !transitive {
		return g.inBuildOrder(slices.Clone(adj[start]))
	}

	seen := make([]bool, len(g.projects))
	seen[start] = true
	stack := slices.Clone(adj[start])
	var found []int
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[i] {
			continue
		}
		seen[i] = true
		found = append(found, i)
		stack = append(stack, adj[i]...)
	}
	return g.inBuildOrder(found)
}

func (g *Graph) mustHave(p Project) (int, error) {
	i, ok := g.lookup(p)
	if !ok {
		return 0, unknownProject(p)
	}
	return i, nil
}

var errNilGraph = rerr.New(rerr.ErrCodeInvalidInput, "graph is nil")
