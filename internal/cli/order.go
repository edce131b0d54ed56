package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/pipeline"
)

// outputFlags holds flags for commands that export a plan.
type outputFlags struct {
	format   string // output format
	output   string // output file path (stdout when empty)
	detailed bool   // add metadata to diagram labels
	noCache  bool   // disable the render cache
	refresh  bool   // re-render and overwrite cached output
}

func (f *outputFlags) bind(cmd *cobra.Command, defaultFormat, formats string) {
	fl := cmd.Flags()
	fl.StringVar(&f.format, "format", defaultFormat, "output format: "+formats)
	fl.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fl.BoolVar(&f.detailed, "detailed", false, "include group, version and path in diagram labels")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the render cache")
	fl.BoolVar(&f.refresh, "refresh", false, "re-render and overwrite cached output")
}

// orderCommand creates the order command, which prints the build order.
func (c *CLI) orderCommand() *cobra.Command {
	var plan planFlags
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Print the build order of the reactor",
		Long: `Print the projects of the reactor in build order: every project appears after
all of its dependencies. With --format json, each entry also lists its direct
upstream projects.`,
		Example: `  reactor order
  reactor order -f modules/reactor.yaml --sort depth-first
  reactor order -p :web --also-make --format json -o plan.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(out.format, pipeline.FormatText, pipeline.FormatJSON); err != nil {
				return err
			}
			return c.runExport(cmd, plan, out)
		},
	}

	plan.bind(cmd)
	out.bind(cmd, pipeline.FormatText, "text, json")
	return cmd
}

// runExport runs the pipeline and writes the rendered plan.
func (c *CLI) runExport(cmd *cobra.Command, plan planFlags, out outputFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := plan.options()
	opts.Format = out.format
	opts.Detailed = out.detailed
	opts.Refresh = out.refresh
	opts.Logger = logger

	result, err := runner.Plan(ctx, opts)
	if err != nil {
		return err
	}

	// Styled listing for humans; everything else is written verbatim.
	if opts.Format == pipeline.FormatText && out.output == "" {
		printProjects(cmd.OutOrStdout(), result.View().SortedProjects())
		return nil
	}

	slow := opts.Format == pipeline.FormatSVG || opts.Format == pipeline.FormatPNG
	var spin *Spinner
	if slow {
		spin = newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+opts.Format+"...")
		spin.Start()
	}
	err = runner.Render(ctx, result, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if out.output == "" {
		_, err := cmd.OutOrStdout().Write(result.Output)
		return err
	}
	if err := os.WriteFile(out.output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out.output, err)
	}
	w := cmd.ErrOrStderr()
	printSuccess(w, "Wrote %s plan", opts.Format)
	printFile(w, out.output)
	printStats(w, result.Stats.Projects, result.Stats.Edges, result.Stats.Selected, result.CacheInfo.RenderHit)
	return nil
}

// checkFormat fails with INVALID_FORMAT unless format is one of allowed.
func checkFormat(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return rerr.New(rerr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
