package selector

import (
	"slices"
	"testing"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
)

// testGraph: api ← core ← {web, cli}; docs stands alone.
func testGraph(t *testing.T) *reactor.Graph {
	t.Helper()
	mk := func(artifact, path string, deps ...string) *reactor.Descriptor {
		d := &reactor.Descriptor{GroupID: "org.example", ArtifactID: artifact, Path: path}
		for _, dep := range deps {
			d.Deps = append(d.Deps, reactor.GA{GroupID: "org.example", ArtifactID: dep})
		}
		return d
	}
	g, err := reactor.New([]reactor.Project{
		mk("api", "modules/api"),
		mk("core", "modules/core", "api"),
		mk("web", "apps/web", "core"),
		mk("cli", "apps/cli", "core"),
		mk("docs", "docs"),
	})
	if err != nil {
		t.Fatalf("reactor.New() error = %v", err)
	}
	return g
}

func artifacts(ps []reactor.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID().ArtifactID
	}
	return out
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{"everything", Request{}, []string{"api", "core", "web", "cli", "docs"}},
		{"single by ga", Request{Projects: []string{"org.example:core"}}, []string{"core"}},
		{"by artifact", Request{Projects: []string{":web", ":api"}}, []string{"api", "web"}},
		{"by path", Request{Projects: []string{"./apps/cli/"}}, []string{"cli"}},
		{"also make", Request{Projects: []string{":web"}, AlsoMake: true}, []string{"api", "core", "web"}},
		{"also make dependents", Request{Projects: []string{":core"}, AlsoMakeDependents: true}, []string{"core", "web", "cli"}},
		{"both directions", Request{Projects: []string{":core"}, AlsoMake: true, AlsoMakeDependents: true}, []string{"api", "core", "web", "cli"}},
		{"exclude only", Request{Projects: []string{"!:docs", "-apps/web"}}, []string{"api", "core", "cli"}},
		{"include and exclude", Request{Projects: []string{":core", "!:api"}, AlsoMake: true}, []string{"core"}},
		{"resume", Request{ResumeFrom: ":web"}, []string{"web", "cli", "docs"}},
		{"resume within selection", Request{Projects: []string{":cli"}, AlsoMake: true, ResumeFrom: ":core"}, []string{"core", "cli"}},
		{"optional missing", Request{Projects: []string{"?:gone", ":docs"}}, []string{"docs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Select(testGraph(t), tt.req)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got := artifacts(sel.Projects); !slices.Equal(got, tt.want) {
				t.Errorf("Projects = %v, want %v", got, tt.want)
			}
			if got := artifacts(sel.Graph.SortedProjects()); !slices.Equal(got, tt.want) {
				t.Errorf("Graph.SortedProjects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectFullGraphIsUnfiltered(t *testing.T) {
	g := testGraph(t)
	sel, err := Select(g, Request{})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Graph != reactor.ProjectGraph(g) {
		t.Error("an empty request should return the full graph")
	}
}

func TestSelectBridgesHiddenProjects(t *testing.T) {
	g := testGraph(t)
	sel, err := Select(g, Request{Projects: []string{":api", ":web"}})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	api, _ := g.Project(reactor.MustParseGA("org.example:api"))
	down, err := sel.Graph.DownstreamProjects(api, false)
	if err != nil {
		t.Fatalf("DownstreamProjects() error = %v", err)
	}
	if got := artifacts(down); !slices.Equal(got, []string{"web"}) {
		t.Errorf("DownstreamProjects(api) = %v, want [web]", got)
	}
}

func TestSelectMissing(t *testing.T) {
	sel, err := Select(testGraph(t), Request{Projects: []string{"?:gone", "?!:nothing", ":api"}})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if !slices.Equal(sel.Missing, []string{"?:gone", "?!:nothing"}) {
		t.Errorf("Missing = %v", sel.Missing)
	}
}

func TestSelectErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		code rerr.Code
	}{
		{"unknown project", Request{Projects: []string{":gone"}}, rerr.ErrCodeNotFound},
		{"unknown exclusion", Request{Projects: []string{"!org.example:gone"}}, rerr.ErrCodeNotFound},
		{"unknown path", Request{Projects: []string{"modules/gone"}}, rerr.ErrCodeNotFound},
		{"unknown resume", Request{ResumeFrom: ":gone"}, rerr.ErrCodeNotFound},
		{"resume outside selection", Request{Projects: []string{":api"}, ResumeFrom: ":docs"}, rerr.ErrCodeNotFound},
		{"malformed ga", Request{Projects: []string{"a:b:c:d"}}, rerr.ErrCodeInvalidInput},
		{"empty selector", Request{Projects: []string{"!"}}, rerr.ErrCodeInvalidInput},
		{"everything excluded", Request{Projects: []string{":docs", "!docs"}}, rerr.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Select(testGraph(t), tt.req); !rerr.Is(err, tt.code) {
				t.Errorf("Select() error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Select(nil, Request{}); !rerr.Is(err, rerr.ErrCodeInvalidInput) {
		t.Errorf("Select(nil) error = %v, want %s", err, rerr.ErrCodeInvalidInput)
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{":a", []string{":a"}},
		{" :a , !b,,?c ", []string{":a", "!b", "?c"}},
	}

	for _, tt := range tests {
		if got := ParseList(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("ParseList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		raw      string
		expr     string
		exclude  bool
		optional bool
	}{
		{":a", ":a", false, false},
		{"!:a", ":a", true, false},
		{"-mod/a", "mod/a", true, false},
		{"?:a", ":a", false, true},
		{"?!g:a", "g:a", true, true},
	}

	for _, tt := range tests {
		s := parseSelector(tt.raw)
		if s.expr != tt.expr || s.exclude != tt.exclude || s.optional != tt.optional {
			t.Errorf("parseSelector(%q) = %+v", tt.raw, s)
		}
	}
}
