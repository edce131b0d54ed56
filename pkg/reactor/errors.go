package reactor

import (
	"errors"
	"fmt"
	"strings"

	rerr "github.com/matzehuels/reactor/pkg/errors"
)

// ErrUnknownProject is the cause of every UNKNOWN_PROJECT error: a query
// named a project that is not a node of the graph (or not a whitelist
// member of a filtered graph). It is a caller bug, so queries fail instead
// of returning an empty result.
var ErrUnknownProject = errors.New("unknown project")

// Location identifies where a project appeared in the construction input.
type Location struct {
	Index int    // position in the input slice
	Path  string // module path, when the project implements Locator
}

func (l Location) String() string {
	if l.Path != "" {
		return fmt.Sprintf("#%d (%s)", l.Index, l.Path)
	}
	return fmt.Sprintf("#%d", l.Index)
}

func locate(p Project, index int) Location {
	loc := Location{Index: index}
	if l, ok := p.(Locator); ok {
		loc.Path = l.Location()
	}
	return loc
}

// DuplicateProjectError reports two input projects sharing one identity.
type DuplicateProjectError struct {
	ID     GA
	First  Location
	Second Location
}

func (e *DuplicateProjectError) Error() string {
	return fmt.Sprintf("project %s is declared twice: at %s and at %s", e.ID, e.First, e.Second)
}

// CycleError reports a dependency cycle. Path starts and ends with the same
// project, following dependency edges: [a b c a] means a depends on b, b on
// c and c on a.
type CycleError struct {
	Path []GA
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = id.String()
	}
	return strings.Join(parts, " → ")
}

func unknownProject(p Project) error {
	if p == nil {
		return rerr.Wrap(rerr.ErrCodeUnknownProject, ErrUnknownProject, "nil project")
	}
	return rerr.Wrap(rerr.ErrCodeUnknownProject, ErrUnknownProject, "project %s is not part of the reactor", p.ID())
}
