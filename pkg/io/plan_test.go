package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
)

func testGraph(t *testing.T) (*reactor.Graph, []reactor.Project) {
	t.Helper()
	a := &reactor.Descriptor{GroupID: "g", ArtifactID: "a", Version: "1.0", Path: "a"}
	b := &reactor.Descriptor{GroupID: "g", ArtifactID: "b", Deps: []reactor.GA{a.ID()}}
	c := &reactor.Descriptor{GroupID: "g", ArtifactID: "c", Deps: []reactor.GA{b.ID(), a.ID()}}
	ps := []reactor.Project{c, b, a}
	g, err := reactor.New(ps)
	if err != nil {
		t.Fatalf("reactor.New() error = %v", err)
	}
	return g, ps
}

func TestNewPlan(t *testing.T) {
	g, _ := testGraph(t)
	plan, err := NewPlan(g)
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}

	var ids []string
	for _, p := range plan.Projects {
		ids = append(ids, p.ID)
	}
	if !slices.Equal(ids, []string{"g:a", "g:b", "g:c"}) {
		t.Errorf("plan order = %v", ids)
	}
	if plan.Projects[0].Version != "1.0" || plan.Projects[0].Path != "a" {
		t.Errorf("plan step a = %+v", plan.Projects[0])
	}
	if got := plan.Projects[2].Upstream; !slices.Equal(got, []string{"g:a", "g:b"}) {
		t.Errorf("upstream of c = %v, want build order [g:a g:b]", got)
	}
}

func TestNewPlanFiltered(t *testing.T) {
	g, ps := testGraph(t)
	f, err := reactor.NewFiltered(g, []reactor.Project{ps[0], ps[1]})
	if err != nil {
		t.Fatal(err)
	}
	plan, err := NewPlan(f)
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}
	if len(plan.Projects) != 2 {
		t.Fatalf("plan has %d steps, want 2", len(plan.Projects))
	}
	if got := plan.Projects[0].Upstream; len(got) != 0 {
		t.Errorf("upstream of b = %v, want none", got)
	}
}

func TestRoundTrip(t *testing.T) {
	g, _ := testGraph(t)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	plan, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	ds, err := plan.Descriptors()
	if err != nil {
		t.Fatalf("Descriptors() error = %v", err)
	}
	ps := make([]reactor.Project, len(ds))
	for i, d := range ds {
		ps[i] = d
	}
	rebuilt, err := reactor.New(ps)
	if err != nil {
		t.Fatalf("reactor.New() error = %v", err)
	}
	if got, want := reactor.IDs(rebuilt.SortedProjects()), reactor.IDs(g.SortedProjects()); !slices.Equal(got, want) {
		t.Errorf("rebuilt order = %v, want %v", got, want)
	}
	if len(rebuilt.Edges()) != len(g.Edges()) {
		t.Errorf("rebuilt %d edges, want %d", len(rebuilt.Edges()), len(g.Edges()))
	}
}

func TestExportImport(t *testing.T) {
	g, _ := testGraph(t)
	path := filepath.Join(t.TempDir(), "plan.json")

	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	plan, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if len(plan.Projects) != 3 {
		t.Errorf("imported %d steps, want 3", len(plan.Projects))
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); !rerr.Is(err, rerr.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) error = %v, want %s", err, rerr.ErrCodeFileNotFound)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  rerr.Code
	}{
		{"malformed", `{"projects": [`, rerr.ErrCodeInvalidFormat},
		{"unknown field", `{"projects": [], "extra": 1}`, rerr.ErrCodeInvalidFormat},
		{"bad id", `{"projects": [{"id": "nocolon", "upstream": []}]}`, rerr.ErrCodeInvalidFormat},
		{"duplicate", `{"projects": [{"id": "g:a", "upstream": []}, {"id": "g:a", "upstream": []}]}`, rerr.ErrCodeDuplicateProject},
		{"forward reference", `{"projects": [{"id": "g:a", "upstream": ["g:b"]}, {"id": "g:b", "upstream": []}]}`, rerr.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); !rerr.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}
