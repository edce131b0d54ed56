package reactor

import (
	"strings"

	rerr "github.com/matzehuels/reactor/pkg/errors"
)

// GA is the identity of a project within a reactor: its groupId and
// artifactId. Versions are deliberately not part of the identity, so two
// versions of the same module cannot coexist in one build.
//
// GA is comparable and is used directly as a map key.
type GA struct {
	GroupID    string
	ArtifactID string
}

// String renders the identity as "groupId:artifactId".
func (k GA) String() string { return k.GroupID + ":" + k.ArtifactID }

// IsZero reports whether both halves of the identity are empty.
func (k GA) IsZero() bool { return k.GroupID == "" && k.ArtifactID == "" }

// ParseGA parses "groupId:artifactId" or "groupId:artifactId:version".
// A trailing version is accepted for convenience and discarded.
// Both halves must pass [rerr.ValidateCoordinate].
func ParseGA(s string) (GA, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return GA{}, rerr.New(rerr.ErrCodeInvalidInput, "invalid project id %q: want groupId:artifactId", s)
	}
	ga := GA{GroupID: parts[0], ArtifactID: parts[1]}
	if err := rerr.ValidateCoordinate("groupId", ga.GroupID); err != nil {
		return GA{}, err
	}
	if err := rerr.ValidateCoordinate("artifactId", ga.ArtifactID); err != nil {
		return GA{}, err
	}
	return ga, nil
}

// MustParseGA is like [ParseGA] but panics on malformed input.
// It is intended for tests and static tables.
func MustParseGA(s string) GA {
	ga, err := ParseGA(s)
	if err != nil {
		panic(err)
	}
	return ga
}

// Project is the read-only capability the graph needs from a module: its
// identity and the identities it declares as dependencies. Everything else
// about a module (version, packaging, plugins) is opaque to the graph.
//
// Dependencies may name projects outside the reactor; those references are
// ignored when the graph is built.
type Project interface {
	ID() GA
	Dependencies() []GA
}

// Locator is implemented by projects that know where they were declared,
// typically a module path from a manifest. It is only used for diagnostics.
type Locator interface {
	Location() string
}

// Descriptor is the default [Project] implementation. Version and Path are
// carried as payload and never interpreted by the graph.
type Descriptor struct {
	GroupID    string
	ArtifactID string
	Version    string
	Path       string
	Deps       []GA
}

// NewDescriptor returns a descriptor for id depending on deps.
func NewDescriptor(id GA, deps ...GA) *Descriptor {
	return &Descriptor{GroupID: id.GroupID, ArtifactID: id.ArtifactID, Deps: deps}
}

// ID returns the project's groupId:artifactId identity.
func (d *Descriptor) ID() GA {
	if d == nil {
		return GA{}
	}
	return GA{GroupID: d.GroupID, ArtifactID: d.ArtifactID}
}

// Dependencies returns the declared dependency identities.
func (d *Descriptor) Dependencies() []GA {
	if d == nil {
		return nil
	}
	return d.Deps
}

// Location returns the declared module path.
func (d *Descriptor) Location() string {
	if d == nil {
		return ""
	}
	return d.Path
}

// String renders "groupId:artifactId" or "groupId:artifactId:version".
func (d *Descriptor) String() string {
	if d == nil || d.Version == "" {
		return d.ID().String()
	}
	return d.ID().String() + ":" + d.Version
}

// IDs extracts the identity of each project, preserving order.
func IDs(projects []Project) []GA {
	ids := make([]GA, len(projects))
	for i, p := range projects {
		ids[i] = p.ID()
	}
	return ids
}
