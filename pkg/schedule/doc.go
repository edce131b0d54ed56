// Package schedule drives a reactor build: it runs a build function for
// every project of a [reactor.ProjectGraph], in parallel where the dependency
// edges allow it.
//
// A project starts only after every member of UpstreamProjects(project,
// false) has built successfully. When the graph is a filtered view, hidden
// projects are never built and the contracted edges still order the
// selected ones.
//
// # Failure
//
// The first failing build cancels the context passed to in-flight builds
// and stops scheduling; projects that never started are reported as
// skipped. Cancelling the caller's context has the same effect.
//
// # Dry Runs
//
// [Waves] groups projects into levels that could run concurrently, which is
// what the CLI prints for a dry run.
package schedule
