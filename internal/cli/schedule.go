package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reactor/pkg/reactor"
	"github.com/matzehuels/reactor/pkg/schedule"
)

// scheduleCommand creates the schedule command, which runs a shell command
// in every selected module with dependency-aware parallelism, or prints the
// parallel build waves.
func (c *CLI) scheduleCommand() *cobra.Command {
	var plan planFlags
	var (
		workers int
		command string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Build modules in parallel, respecting dependencies",
		Long: `Run a shell command in the directory of every selected module. A module starts
as soon as all of its upstream projects have been built, with at most --workers
builds running at once. The first failure stops new builds; modules that did
not start are reported as skipped.

Without --exec (or with --dry-run), print the build waves: groups of modules
that can be built in parallel.

The command runs with REACTOR_PROJECT (group:artifact) and REACTOR_VERSION set.`,
		Example: `  reactor schedule --dry-run
  reactor schedule --exec "make build" -j 4
  reactor schedule --exec "go test ./..." -p :web --also-make`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := plan.options()
			opts.Workers = workers
			opts.Logger = logger
			result, err := runner.Plan(ctx, opts)
			if err != nil {
				return err
			}
			view := result.View()

			if dryRun || command == "" {
				waves, err := schedule.Waves(view)
				if err != nil {
					return err
				}
				printWaves(cmd.OutOrStdout(), waves)
				return nil
			}

			exe := &schedule.Executor{Workers: workers, Logger: logger}
			build := shellBuild(command, filepath.Dir(result.ManifestPath))
			prog := newProgress(logger)
			report, runErr := exe.Run(ctx, view, build)
			if report == nil {
				return runErr
			}
			prog.done(fmt.Sprintf("Built %d of %d modules", report.Count(schedule.Succeeded), len(report.Outcomes)))
			w := cmd.OutOrStdout()
			for _, o := range report.Outcomes {
				printOutcome(w, o)
			}
			printReport(w, report)
			return runErr
		},
	}

	plan.bind(cmd)
	fl := cmd.Flags()
	fl.IntVarP(&workers, "workers", "j", 0, "maximum parallel builds (default: number of CPUs)")
	fl.StringVar(&command, "exec", "", "shell command to run in each module directory")
	fl.BoolVar(&dryRun, "dry-run", false, "print the build waves without running anything")
	return cmd
}

// shellBuild returns a build function running command with sh in each
// module's directory, resolved against root.
func shellBuild(command, root string) schedule.BuildFunc {
	return func(ctx context.Context, p reactor.Project) error {
		dir := root
		version := ""
		if d, ok := p.(*reactor.Descriptor); ok {
			if d.Path != "" {
				dir = filepath.Join(root, d.Path)
			}
			version = d.Version
		}

		var out bytes.Buffer
		sh := exec.CommandContext(ctx, "sh", "-c", command)
		sh.Dir = dir
		sh.Env = append(os.Environ(),
			"REACTOR_PROJECT="+p.ID().String(),
			"REACTOR_VERSION="+version,
		)
		sh.Stdout = &out
		sh.Stderr = &out
		if err := sh.Run(); err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%s interrupted: %w", p.ID(), ctx.Err())
			}
			if tail := lastLine(out.String()); tail != "" {
				return fmt.Errorf("%w: %s", err, tail)
			}
			return err
		}
		return nil
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
