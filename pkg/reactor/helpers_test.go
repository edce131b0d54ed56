package reactor_test

import (
	"testing"

	"github.com/matzehuels/reactor/pkg/reactor"
)

const testGroup = "org.apache"

// proj builds a descriptor in testGroup depending on the named artifacts.
func proj(artifact string, deps ...string) *reactor.Descriptor {
	d := &reactor.Descriptor{GroupID: testGroup, ArtifactID: artifact, Version: "1.2"}
	for _, dep := range deps {
		d.Deps = append(d.Deps, reactor.GA{GroupID: testGroup, ArtifactID: dep})
	}
	return d
}

func projects(ds ...*reactor.Descriptor) []reactor.Project {
	out := make([]reactor.Project, len(ds))
	for i, d := range ds {
		out[i] = d
	}
	return out
}

func mustNew(t *testing.T, ps []reactor.Project, opts ...reactor.Option) *reactor.Graph {
	t.Helper()
	g, err := reactor.New(ps, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func mustFilter(t *testing.T, g *reactor.Graph, ps ...*reactor.Descriptor) *reactor.FilteredGraph {
	t.Helper()
	f, err := reactor.NewFiltered(g, projects(ps...))
	if err != nil {
		t.Fatalf("NewFiltered() error = %v", err)
	}
	return f
}

// names returns the artifactIds of ps in order.
func names(ps []reactor.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID().ArtifactID
	}
	return out
}

func equalNames(got []reactor.Project, want ...string) bool {
	n := names(got)
	if len(n) != len(want) {
		return false
	}
	for i := range n {
		if n[i] != want[i] {
			return false
		}
	}
	return true
}

// chain is the five-project reactor used across tests:
// b → a, c → b, d → {a, b, c}, e → {a, b, c, d}.
type chain struct {
	a, b, c, d, e *reactor.Descriptor
}

func newChain() chain {
	return chain{
		a: proj("a"),
		b: proj("b", "a"),
		c: proj("c", "b"),
		d: proj("d", "a", "b", "c"),
		e: proj("e", "a", "b", "c", "d"),
	}
}

func (c chain) all() []reactor.Project { return projects(c.a, c.b, c.c, c.d, c.e) }
