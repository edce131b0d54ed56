// Package cache provides byte caching for rendered build plans.
//
// Rendering a plan (Graphviz layout in particular) is the only expensive step
// of a reactor invocation, so its outputs are cached by the content hash of
// the manifest plus every option that influences the output.
//
// # Implementations
//
//   - [FileCache]: entries as JSON files under a directory, used by the CLI
//   - [NullCache]: never stores anything, used with --no-cache and in tests
//
// # Keys
//
// A [Keyer] derives cache keys. [DefaultKeyer] hashes its inputs with
// SHA-256; [ScopedKeyer] adds a prefix so that different releases of the tool
// never share entries.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLs for cached values.
const (
	// TTLPlan applies to plan exports (text, JSON).
	TTLPlan = 24 * time.Hour

	// TTLArtifact applies to rendered diagrams (DOT, SVG, PNG).
	TTLArtifact = 7 * 24 * time.Hour
)

// PlanKeyOpts are the inputs besides the manifest that change a plan.
type PlanKeyOpts struct {
	Sort               string   `json:"sort"`
	Projects           []string `json:"projects,omitempty"`
	AlsoMake           bool     `json:"also_make,omitempty"`
	AlsoMakeDependents bool     `json:"also_make_dependents,omitempty"`
	ResumeFrom         string   `json:"resume_from,omitempty"`
}

// ArtifactKeyOpts are the inputs that change a rendered artifact of a plan.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// PlanKey identifies a plan: a manifest (by content hash) and the
	// selection and sort options applied to it.
	PlanKey(manifestHash string, opts PlanKeyOpts) string

	// ArtifactKey identifies one rendering of a plan.
	ArtifactKey(planKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key inputs into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey implements [Keyer].
func (DefaultKeyer) PlanKey(manifestHash string, opts PlanKeyOpts) string {
	return kindPlan.key(manifestHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(planKey string, opts ArtifactKeyOpts) string {
	return kindArtifact.key(planKey, opts)
}
