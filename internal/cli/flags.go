package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/reactor/pkg/pipeline"
	"github.com/matzehuels/reactor/pkg/selector"
)

// planFlags holds the flags shared by every command that loads a reactor.
type planFlags struct {
	file               string // manifest file or directory
	projects           string // comma-separated project selectors
	alsoMake           bool   // add dependencies of selected projects
	alsoMakeDependents bool   // add dependents of selected projects
	resumeFrom         string // skip projects before this one
	sort               string // sort strategy
}

// bind registers the plan flags on cmd.
func (f *planFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "reactor manifest or directory containing one (default: working directory)")
	fl.StringVarP(&f.projects, "projects", "p", "", "comma-separated projects to build: group:artifact, :artifact or path; prefix ! to exclude, ? for optional")
	fl.BoolVar(&f.alsoMake, "also-make", false, "also build the dependencies of the selected projects")
	fl.BoolVar(&f.alsoMakeDependents, "also-make-dependents", false, "also build the projects depending on the selected projects")
	fl.StringVar(&f.resumeFrom, "resume-from", "", "resume the build from this project")
	fl.StringVar(&f.sort, "sort", "kahn", "sort strategy: kahn or depth-first")
}

// options converts the flags into pipeline options.
func (f *planFlags) options() pipeline.Options {
	return pipeline.Options{
		ManifestPath: f.file,
		Sort:         f.sort,
		Selection: selector.Request{
			Projects:           selector.ParseList(f.projects),
			AlsoMake:           f.alsoMake,
			AlsoMakeDependents: f.alsoMakeDependents,
			ResumeFrom:         f.resumeFrom,
		},
	}
}
