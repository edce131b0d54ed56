package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/reactor/pkg/cache"
	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/manifest"
	"github.com/matzehuels/reactor/pkg/observability"
	"github.com/matzehuels/reactor/pkg/reactor"
	"github.com/matzehuels/reactor/pkg/selector"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete pipeline and renders the plan in opts.Format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.Plan(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Render(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// Plan runs the load, build and select stages.
func (r *Runner) Plan(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Plan()
	result := &Result{ID: uuid.New()}
	logger := r.Logger.With("run", result.ID.String()[:8])

	// Stage 1: Load
	loadStart := time.Now()
	path, ps, hash, err := load(opts.ManifestPath)
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoad(ctx, path, len(ps), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.ManifestPath = path
	result.ManifestHash = hash
	logger.Debug("loaded manifest", "path", path, "projects", len(ps), "duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	g, err := reactor.New(ps, reactor.WithSortStrategy(opts.SortStrategy()))
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		hooks.OnGraphBuilt(ctx, len(ps), 0, result.Stats.BuildTime, err)
		return nil, err
	}
	result.Graph = g
	result.Stats.Projects = g.Len()
	result.Stats.Edges = len(g.Edges())
	hooks.OnGraphBuilt(ctx, result.Stats.Projects, result.Stats.Edges, result.Stats.BuildTime, nil)
	logger.Info("built reactor",
		"projects", result.Stats.Projects,
		"edges", result.Stats.Edges,
		"sort", opts.Sort,
		"duration", result.Stats.BuildTime)

	// Stage 3: Select
	sel, err := selector.Select(g, opts.Selection)
	if err != nil {
		hooks.OnSelect(ctx, 0, g.Len(), err)
		return nil, err
	}
	result.Selection = sel
	result.Stats.Selected = len(sel.Projects)
	hooks.OnSelect(ctx, result.Stats.Selected, g.Len(), nil)
	for _, missing := range sel.Missing {
		logger.Warn("optional project not found", "selector", missing)
	}
	if !opts.Selection.IsZero() {
		logger.Info("selected projects", "selected", result.Stats.Selected, "total", g.Len())
	}
	return result, nil
}

// Render writes result's plan in opts.Format into result.Output, serving it
// from the cache when the manifest and options are unchanged.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	hooks := observability.Cache()

	planKey := r.Keyer.PlanKey(result.ManifestHash, opts.PlanKeyOpts())
	key := r.Keyer.ArtifactKey(planKey, opts.ArtifactKeyOpts())
	cacheable := result.ManifestHash != "" && opts.Format != FormatJSON

	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, opts.Format)
			result.Output = data
			result.CacheInfo.RenderHit = true
			r.Logger.Debug("render cache hit", "format", opts.Format)
			return nil
		}
		hooks.OnCacheMiss(ctx, opts.Format)
	}

	renderStart := time.Now()
	data, err := RenderFormat(result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Plan().OnRender(ctx, opts.Format, len(data), result.Stats.RenderTime, err)
	if err != nil {
		return err
	}
	result.Output = data
	r.Logger.Debug("rendered plan", "format", opts.Format, "bytes", len(data), "duration", result.Stats.RenderTime)

	if cacheable {
		ttl := cache.TTLPlan
		if opts.Format == FormatSVG || opts.Format == FormatPNG || opts.Format == FormatDOT {
			ttl = cache.TTLArtifact
		}
		if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, opts.Format, len(data))
		}
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// load resolves and decodes the manifest, returning its path, projects and
// content hash.
func load(path string) (string, []reactor.Project, string, error) {
	resolved, err := resolveManifest(path)
	if err != nil {
		return path, nil, "", err
	}
	if err := rerr.ValidateManifestFilename(filepath.Base(resolved)); err != nil {
		return resolved, nil, "", err
	}
	format, err := manifest.DetectFormat(resolved)
	if err != nil {
		return resolved, nil, "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return resolved, nil, "", rerr.Wrap(rerr.ErrCodeInternal, err, "read manifest %s", resolved)
	}
	m, err := manifest.Decode(data, format)
	if err != nil {
		return resolved, nil, "", err
	}
	ps, err := m.ReactorProjects()
	if err != nil {
		return resolved, nil, "", err
	}
	return resolved, ps, cache.Hash(data), nil
}

func resolveManifest(path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", rerr.Wrap(rerr.ErrCodeFileNotFound, err, "manifest %s not found", path)
	}
	if err != nil {
		return "", rerr.Wrap(rerr.ErrCodeInvalidPath, err, "stat %s", path)
	}
	if info.IsDir() {
		return manifest.Locate(path)
	}
	return path, nil
}
