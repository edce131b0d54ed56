package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/reactor/pkg/pipeline"
)

// graphCommand creates the graph command, which exports the dependency graph
// of the selected projects as a diagram.
func (c *CLI) graphCommand() *cobra.Command {
	var plan planFlags
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the reactor dependency graph as DOT, SVG or PNG",
		Long: `Export the dependency graph of the reactor. Nodes are numbered in build order.
When a project selection is active, unselected projects are drawn dashed so that
dependency paths through them stay visible.

SVG and PNG output is cached by manifest content and options.`,
		Example: `  reactor graph > reactor.dot
  reactor graph --format svg -o reactor.svg
  reactor graph -p :web --also-make --format png -o web.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(out.format, pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG); err != nil {
				return err
			}
			return c.runExport(cmd, plan, out)
		},
	}

	plan.bind(cmd)
	out.bind(cmd, pipeline.FormatDOT, "dot, svg, png")
	return cmd
}
