package cli

import (
	"github.com/spf13/cobra"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
	"github.com/matzehuels/reactor/pkg/selector"
)

// queryDirection selects which side of a project a query walks.
type queryDirection int

const (
	queryUpstream queryDirection = iota
	queryDownstream
)

func (d queryDirection) String() string {
	if d == queryUpstream {
		return "upstream"
	}
	return "downstream"
}

// upstreamCommand creates the upstream command, listing what a project
// depends on.
func (c *CLI) upstreamCommand() *cobra.Command {
	return c.queryCommand(queryUpstream,
		"List the projects a project depends on",
		`  reactor upstream org.example:web
  reactor upstream :web --transitive
  reactor upstream web -p :api,:web`)
}

// downstreamCommand creates the downstream command, listing what depends on
// a project.
func (c *CLI) downstreamCommand() *cobra.Command {
	return c.queryCommand(queryDownstream,
		"List the projects depending on a project",
		`  reactor downstream org.example:api
  reactor downstream :api --transitive`)
}

func (c *CLI) queryCommand(dir queryDirection, short, example string) *cobra.Command {
	var plan planFlags
	var transitive bool

	cmd := &cobra.Command{
		Use:   dir.String() + " <project>",
		Short: short,
		Long: short + `.

The project is named like a selector: group:artifact, :artifact or its module
path. Results are listed in build order. When a project selection is active,
only selected projects are reported, and paths through unselected projects are
followed.`,
		Example: example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := plan.options()
			opts.Logger = loggerFromContext(ctx)
			result, err := runner.Plan(ctx, opts)
			if err != nil {
				return err
			}

			target, err := resolveProject(result.Graph, args[0])
			if err != nil {
				return err
			}

			view := result.View()
			var related []reactor.Project
			if dir == queryUpstream {
				related, err = view.UpstreamProjects(target, transitive)
			} else {
				related, err = view.DownstreamProjects(target, transitive)
			}
			if err != nil {
				return err
			}

			if len(related) == 0 {
				printInfo(cmd.ErrOrStderr(), "%s has no %s projects", target.ID(), dir)
				return nil
			}
			printProjects(cmd.OutOrStdout(), related)
			return nil
		},
	}

	plan.bind(cmd)
	cmd.Flags().BoolVarP(&transitive, "transitive", "t", false, "include indirect "+dir.String()+" projects")
	return cmd
}

// resolveProject finds the single project named by expr.
func resolveProject(g *reactor.Graph, expr string) (reactor.Project, error) {
	matched, err := selector.Match(g, expr)
	if err != nil {
		return nil, err
	}
	switch len(matched) {
	case 0:
		return nil, rerr.Wrap(rerr.ErrCodeUnknownProject, reactor.ErrUnknownProject, "project %q is not part of the reactor", expr)
	case 1:
		return matched[0], nil
	}
	return nil, rerr.New(rerr.ErrCodeInvalidInput, "project %q is ambiguous: matches %s and %s", expr, matched[0].ID(), matched[1].ID())
}
