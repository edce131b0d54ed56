package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/reactor/pkg/observability"
	"github.com/matzehuels/reactor/pkg/reactor"
)

// BuildFunc builds one project. It should return promptly once ctx is done.
type BuildFunc func(ctx context.Context, p reactor.Project) error

// Status is the outcome of one project in a run.
type Status int

const (
	// Skipped projects did not complete because an earlier build failed or
	// the run was cancelled. A build that was already running and returned
	// the cancellation error is Skipped too, not Failed.
	Skipped Status = iota
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "success"
	case Failed:
		return "failed"
	}
	return "skipped"
}

// interrupted reports whether err is the run's own cancellation surfacing
// from a build, rather than a failure of that build.
func interrupted(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())
}

// Outcome records what happened to one project.
type Outcome struct {
	Project  reactor.Project
	Status   Status
	Err      error
	Duration time.Duration
}

// Report summarizes a run. Outcomes are in build order. Only builds that
// returned their own error count as Failed.
type Report struct {
	Outcomes []Outcome
	Duration time.Duration
}

// Count returns the number of outcomes with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Executor runs builds with bounded parallelism.
type Executor struct {
	// Workers caps concurrent builds. Zero means runtime.NumCPU().
	Workers int

	// Logger receives progress. Nil discards it.
	Logger *log.Logger
}

type completion struct {
	index    int
	err      error
	skipped  bool
	duration time.Duration
}

// Run builds every project of g. It returns the report together with the
// first build error, or the context error if the run was cancelled.
func (e *Executor) Run(ctx context.Context, g reactor.ProjectGraph, build BuildFunc) (*Report, error) {
	logger := e.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	order := g.SortedProjects()
	rank := make(map[reactor.GA]int, len(order))
	for i, p := range order {
		rank[p.ID()] = i
	}

	pending := make([]int, len(order))
	dependents := make([][]int, len(order))
	var ready []int
	for i, p := range order {
		deps, err := g.UpstreamProjects(p, false)
		if err != nil {
			return nil, err
		}
		pending[i] = len(deps)
		for _, d := range deps {
			j := rank[d.ID()]
			dependents[j] = append(dependents[j], i)
		}
		if pending[i] == 0 {
			ready = append(ready, i)
		}
	}

	report := &Report{Outcomes: make([]Outcome, len(order))}
	for i, p := range order {
		report.Outcomes[i] = Outcome{Project: p, Status: Skipped}
	}

	hooks := observability.Schedule()
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	done := make(chan completion, len(order))

	launch := func(i int) {
		p := order[i]
		eg.Go(func() error {
			if egctx.Err() != nil {
				done <- completion{index: i, skipped: true}
				return nil
			}
			id := p.ID().String()
			hooks.OnModuleStart(egctx, id)
			logger.Debug("building module", "module", id)

			t := time.Now()
			err := build(egctx, p)
			d := time.Since(t)
			hooks.OnModuleComplete(egctx, id, d, err)
			done <- completion{index: i, err: err, duration: d}
			if err != nil {
				return fmt.Errorf("build %s: %w", id, err)
			}
			return nil
		})
	}

	logger.Debug("scheduling reactor", "modules", len(order), "workers", workers)

	inflight := 0
	stopped := false
	for {
		for !stopped && len(ready) > 0 {
			if egctx.Err() != nil {
				stopped = true
				break
			}
			i := ready[0]
			ready = ready[1:]
			inflight++
			launch(i)
		}
		if inflight == 0 {
			break
		}

		c := <-done
		inflight--
		out := &report.Outcomes[c.index]
		switch {
		case c.skipped:
			stopped = true
		case interrupted(egctx, c.err):
			out.Duration = c.duration
			logger.Debug("module interrupted", "module", out.Project.ID())
			stopped = true
		case c.err != nil:
			out.Status, out.Err, out.Duration = Failed, c.err, c.duration
			logger.Error("module failed", "module", out.Project.ID(), "err", c.err)
			stopped = true
		default:
			out.Status, out.Duration = Succeeded, c.duration
			logger.Info("module built", "module", out.Project.ID(), "duration", c.duration)
			for _, j := range dependents[c.index] {
				pending[j]--
				if pending[j] == 0 {
					ready = append(ready, j)
				}
			}
			slices.Sort(ready)
		}
	}

	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	report.Duration = time.Since(start)
	if skipped := report.Count(Skipped); skipped > 0 {
		logger.Warn("modules skipped", "count", skipped)
	}
	return report, err
}
