// Package pipeline turns a reactor manifest into a build plan.
//
// This package implements the load → build → select → render pipeline shared
// by every reactor command. Centralizing it keeps the CLI thin and gives all
// commands the same validation, logging and caching behavior.
//
// # Stages
//
//  1. Load: locate and decode the manifest (TOML, YAML or JSON)
//  2. Build: construct the reactor graph, rejecting duplicates and cycles
//  3. Select: apply the project selection (-pl, --also-make, --resume-from)
//  4. Render: write the plan as text, JSON, DOT, SVG or PNG
//
// Stages 1-3 always run because they validate the reactor. Rendered output is
// cached by manifest content and options, so repeated diagram renders of an
// unchanged reactor skip Graphviz.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ManifestPath: "reactor.toml",
//	    Format:       pipeline.FormatSVG,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/reactor/pkg/cache"
	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
	"github.com/matzehuels/reactor/pkg/selector"
)

// =============================================================================
// Default Values
// =============================================================================

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// DefaultFormat is the default output format.
const DefaultFormat = FormatText

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// ManifestPath is a manifest file or a directory to search with
	// manifest.Locate. Empty means the working directory.
	ManifestPath string

	// Selection narrows the reactor to the projects to build.
	Selection selector.Request

	// Sort is the sort strategy name ("kahn" or "depth-first").
	Sort string

	// Format is the output format of Render.
	Format string

	// Detailed adds groupId, version and path to diagram labels.
	Detailed bool

	// Workers caps parallel builds of the schedule command.
	Workers int

	// Refresh bypasses cached output and overwrites it.
	Refresh bool

	// Logger receives pipeline progress. Nil discards it.
	Logger *log.Logger

	sort      reactor.SortStrategy
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run. It is logged and embedded in JSON plans.
	ID uuid.UUID

	// ManifestPath is the manifest actually read.
	ManifestPath string

	// ManifestHash is the content hash of the manifest.
	ManifestHash string

	// Graph is the full reactor.
	Graph *reactor.Graph

	// Selection is the part of the reactor selected for the build.
	Selection *selector.Selection

	// Output is the rendered plan, set by Execute and Render.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the output came from the cache.
	CacheInfo CacheInfo
}

// View returns the graph an executor should use: the filtered selection,
// or the full reactor when nothing was filtered.
func (r *Result) View() reactor.ProjectGraph {
	if r.Selection == nil {
		return r.Graph
	}
	return r.Selection.Graph
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Projects   int
	Edges      int
	Selected   int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache usage for the render stage.
type CacheInfo struct {
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return rerr.New(rerr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json, dot, svg, png)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	s, err := reactor.ParseSortStrategy(o.Sort)
	if err != nil {
		return err
	}
	o.sort = s
	o.Sort = s.String()
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SortStrategy returns the parsed sort strategy. Valid after
// ValidateAndSetDefaults.
func (o *Options) SortStrategy() reactor.SortStrategy {
	return o.sort
}

// PlanKeyOpts returns cache key options for the plan.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Sort:               o.Sort,
		Projects:           o.Selection.Projects,
		AlsoMake:           o.Selection.AlsoMake,
		AlsoMakeDependents: o.Selection.AlsoMakeDependents,
		ResumeFrom:         o.Selection.ResumeFrom,
	}
}

// ArtifactKeyOpts returns cache key options for rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   o.Format,
		Detailed: o.Detailed,
	}
}
