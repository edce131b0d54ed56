package io

import (
	"encoding/json"
	"io"
	"os"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
)

// Plan is the JSON form of a build order.
type Plan struct {
	ID       string    `json:"id,omitempty"`
	Sort     string    `json:"sort,omitempty"`
	Projects []Project `json:"projects"`
}

// Project is one step of a plan.
type Project struct {
	ID       string   `json:"id"`
	Version  string   `json:"version,omitempty"`
	Path     string   `json:"path,omitempty"`
	Upstream []string `json:"upstream"`
}

// NewPlan captures the build order of g with each project's direct
// upstream projects.
func NewPlan(g reactor.ProjectGraph) (*Plan, error) {
	sorted := g.SortedProjects()
	plan := &Plan{Projects: make([]Project, len(sorted))}
	for i, p := range sorted {
		up, err := g.UpstreamProjects(p, false)
		if err != nil {
			return nil, err
		}
		step := Project{ID: p.ID().String(), Upstream: make([]string, len(up))}
		for j, q := range up {
			step.Upstream[j] = q.ID().String()
		}
		if d, ok := p.(*reactor.Descriptor); ok {
			step.Version = d.Version
			step.Path = d.Path
		}
		plan.Projects[i] = step
	}
	return plan, nil
}

// Encode writes the plan as indented JSON.
func (p *Plan) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return rerr.Wrap(rerr.ErrCodeInternal, err, "encode plan")
	}
	return nil
}

// Validate checks that project ids are well-formed and unique and that
// every upstream entry names an earlier project of the plan.
func (p *Plan) Validate() error {
	seen := make(map[string]bool, len(p.Projects))
	for i, step := range p.Projects {
		if _, err := reactor.ParseGA(step.ID); err != nil {
			return rerr.Wrap(rerr.ErrCodeInvalidFormat, err, "plan step %d", i)
		}
		if seen[step.ID] {
			return rerr.New(rerr.ErrCodeDuplicateProject, "plan lists %s twice", step.ID)
		}
		for _, up := range step.Upstream {
			if !seen[up] {
				return rerr.New(rerr.ErrCodeInvalidFormat, "plan step %s depends on %s, which is not an earlier step", step.ID, up)
			}
		}
		seen[step.ID] = true
	}
	return nil
}

// Descriptors converts the plan back into reactor projects whose
// dependencies are the plan's upstream lists.
func (p *Plan) Descriptors() ([]*reactor.Descriptor, error) {
	out := make([]*reactor.Descriptor, len(p.Projects))
	for i, step := range p.Projects {
		id, err := reactor.ParseGA(step.ID)
		if err != nil {
			return nil, rerr.Wrap(rerr.ErrCodeInvalidFormat, err, "plan step %d", i)
		}
		d := reactor.NewDescriptor(id)
		d.Version, d.Path = step.Version, step.Path
		for _, up := range step.Upstream {
			dep, err := reactor.ParseGA(up)
			if err != nil {
				return nil, rerr.Wrap(rerr.ErrCodeInvalidFormat, err, "plan step %s", step.ID)
			}
			d.Deps = append(d.Deps, dep)
		}
		out[i] = d
	}
	return out, nil
}

// WriteJSON encodes the plan of g as JSON and writes it to w.
func WriteJSON(g reactor.ProjectGraph, w io.Writer) error {
	plan, err := NewPlan(g)
	if err != nil {
		return err
	}
	return plan.Encode(w)
}

// ExportJSON writes the plan of g to a JSON file at path.
func ExportJSON(g reactor.ProjectGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return rerr.Wrap(rerr.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadJSON decodes and validates a plan from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Plan, error) {
	var p Plan
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, rerr.Wrap(rerr.ErrCodeInvalidFormat, err, "decode plan")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ImportJSON reads a plan from the JSON file at path.
func ImportJSON(path string) (*Plan, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, rerr.Wrap(rerr.ErrCodeFileNotFound, err, "plan %s not found", path)
	}
	if err != nil {
		return nil, rerr.Wrap(rerr.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
