package reactor_test

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
)

// randomReactor derives an acyclic reactor and a whitelist from seed.
// Projects only depend on projects created before them, then the input
// order is shuffled.
func randomReactor(seed int64, size int) ([]reactor.Project, []reactor.Project) {
	rng := rand.New(rand.NewSource(seed))
	descs := make([]*reactor.Descriptor, size)
	for i := range size {
		d := &reactor.Descriptor{GroupID: "g", ArtifactID: fmt.Sprintf("m%d", i)}
		for j := range i {
			if rng.Intn(3) == 0 {
				d.Deps = append(d.Deps, descs[j].ID())
			}
		}
		if rng.Intn(5) == 0 {
			d.Deps = append(d.Deps, reactor.GA{GroupID: "ext", ArtifactID: "lib"})
		}
		descs[i] = d
	}

	ps := make([]reactor.Project, size)
	for i, d := range descs {
		ps[i] = d
	}
	rng.Shuffle(size, func(i, j int) { ps[i], ps[j] = ps[j], ps[i] })

	var whitelist []reactor.Project
	for _, p := range ps {
		if rng.Intn(2) == 0 {
			whitelist = append(whitelist, p)
		}
	}
	return ps, whitelist
}

func positions(ps []reactor.Project) map[reactor.GA]int {
	pos := make(map[reactor.GA]int, len(ps))
	for i, p := range ps {
		pos[p.ID()] = i
	}
	return pos
}

func hasDuplicates(ps []reactor.Project) bool {
	seen := make(map[reactor.GA]bool, len(ps))
	for _, p := range ps {
		if seen[p.ID()] {
			return true
		}
		seen[p.ID()] = true
	}
	return false
}

func inOrder(ps []reactor.Project, pos map[reactor.GA]int) bool {
	return slices.IsSortedFunc(ps, func(a, b reactor.Project) int { return pos[a.ID()] - pos[b.ID()] })
}

// contracted computes the filtered direct neighbours of start the slow way:
// whitelisted projects reachable through paths whose interior is hidden.
func contracted(g *reactor.Graph, start reactor.Project, members map[reactor.GA]bool) map[reactor.GA]bool {
	out := make(map[reactor.GA]bool)
	seen := map[reactor.GA]bool{start.ID(): true}
	queue := []reactor.Project{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		next, _ := g.DownstreamProjects(p, false)
		for _, q := range next {
			if seen[q.ID()] {
				continue
			}
			seen[q.ID()] = true
			if members[q.ID()] {
				out[q.ID()] = true
				continue
			}
			queue = append(queue, q)
		}
	}
	return out
}

func TestGraphProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("sorted order places dependencies first", prop.ForAll(
		func(seed int64, size int, depthFirst bool) bool {
			ps, _ := randomReactor(seed, size)
			s := reactor.SortKahn
			if depthFirst {
				s = reactor.SortDepthFirst
			}
			g, err := reactor.New(ps, reactor.WithSortStrategy(s))
			if err != nil {
				return false
			}
			sorted := g.SortedProjects()
			if len(sorted) != len(ps) || hasDuplicates(sorted) {
				return false
			}
			pos := positions(sorted)
			for _, e := range g.Edges() {
				if pos[e.To] >= pos[e.From] {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.IntRange(0, 20), gen.Bool(),
	))

	properties.Property("transitive upstream contains direct upstream", prop.ForAll(
		func(seed int64, size int) bool {
			ps, _ := randomReactor(seed, size)
			g, err := reactor.New(ps)
			if err != nil {
				return false
			}
			pos := positions(g.SortedProjects())
			for _, p := range ps {
				direct, _ := g.UpstreamProjects(p, false)
				all, _ := g.UpstreamProjects(p, true)
				closure := positions(all)
				for _, q := range direct {
					if _, ok := closure[q.ID()]; !ok {
						return false
					}
				}
				if _, self := closure[p.ID()]; self || hasDuplicates(all) || !inOrder(all, pos) {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.IntRange(1, 20),
	))

	properties.Property("upstream and downstream are inverse", prop.ForAll(
		func(seed int64, size int, transitive bool) bool {
			ps, _ := randomReactor(seed, size)
			g, err := reactor.New(ps)
			if err != nil {
				return false
			}
			for _, p := range ps {
				up, _ := g.UpstreamProjects(p, transitive)
				for _, q := range up {
					down, _ := g.DownstreamProjects(q, transitive)
					if !slices.Contains(reactor.IDs(down), p.ID()) {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(), gen.IntRange(1, 20), gen.Bool(),
	))

	properties.Property("filtered order is a subsequence of the full order", prop.ForAll(
		func(seed int64, size int) bool {
			ps, whitelist := randomReactor(seed, size)
			g, err := reactor.New(ps)
			if err != nil {
				return false
			}
			f, err := reactor.NewFiltered(g, whitelist)
			if err != nil {
				return false
			}
			var want []reactor.GA
			for _, p := range g.SortedProjects() {
				if f.Whitelisted(p) {
					want = append(want, p.ID())
				}
			}
			return slices.Equal(reactor.IDs(f.SortedProjects()), want)
		},
		gen.Int64(), gen.IntRange(0, 20),
	))

	properties.Property("filtered direct dependents are contracted paths", prop.ForAll(
		func(seed int64, size int) bool {
			ps, whitelist := randomReactor(seed, size)
			g, err := reactor.New(ps)
			if err != nil {
				return false
			}
			f, err := reactor.NewFiltered(g, whitelist)
			if err != nil {
				return false
			}
			isMember := make(map[reactor.GA]bool, len(whitelist))
			for _, p := range whitelist {
				isMember[p.ID()] = true
			}
			pos := positions(g.SortedProjects())
			for _, p := range whitelist {
				got, err := f.DownstreamProjects(p, false)
				if err != nil || hasDuplicates(got) || !inOrder(got, pos) {
					return false
				}
				want := contracted(g, p, isMember)
				if len(got) != len(want) {
					return false
				}
				for _, q := range got {
					if !want[q.ID()] {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(), gen.IntRange(0, 20),
	))

	properties.Property("closing a path is reported as a cycle", prop.ForAll(
		func(seed int64, size int) bool {
			ps, _ := randomReactor(seed, size)
			g, err := reactor.New(ps)
			if err != nil {
				return false
			}
			for _, p := range ps {
				up, _ := g.UpstreamProjects(p, true)
				if len(up) == 0 {
					continue
				}
				// Make the deepest dependency depend on p.
				root := up[0].(*reactor.Descriptor)
				closed := *root
				closed.Deps = append(slices.Clone(root.Deps), p.ID())

				mutated := slices.Clone(ps)
				mutated[slices.Index(ps, reactor.Project(root))] = &closed
				_, err := reactor.New(mutated)
				return rerr.Is(err, rerr.ErrCodeCycleDetected)
			}
			return true
		},
		gen.Int64(), gen.IntRange(2, 20),
	))

	properties.TestingRun(t)
}
