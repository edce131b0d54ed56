// Package reactor computes the build order of a multi-module project and
// answers dependency queries between its modules.
//
// # Overview
//
// A reactor is the set of modules taking part in one multi-module build. Each
// module is a [Project]: an identity ([GA], groupId and artifactId) plus the
// identities it declares as dependencies. [New] turns an ordered list of
// projects into a [Graph]:
//
//	g, err := reactor.New([]reactor.Project{api, core, app})
//	if err != nil {
//	    return err // DUPLICATE_PROJECT or CYCLE_DETECTED
//	}
//	for _, p := range g.SortedProjects() {
//	    fmt.Println(p.ID())
//	}
//
// Dependencies on identities outside the reactor (third-party libraries) are
// not modeled: the graph only links modules of the same build.
//
// # Validation
//
// Construction is all-or-nothing. It fails when two projects share an
// identity ([DuplicateProjectError], code DUPLICATE_PROJECT) and when the
// declared dependencies contain a cycle ([CycleError], code CYCLE_DETECTED,
// reported as "a → b → c → a"). Errors are [github.com/matzehuels/reactor/pkg/errors.Error]
// values whose cause is the typed error, so both of these work:
//
//	rerr.Is(err, rerr.ErrCodeCycleDetected)
//
//	var cycle *reactor.CycleError
//	errors.As(err, &cycle)
//
// # Build Order
//
// [Graph.SortedProjects] lists every project after all of its dependencies.
// The default [SortKahn] strategy always emits the ready project that came
// first in the input, so unrelated modules keep their declared order whenever
// the dependencies allow it. [SortDepthFirst] reproduces the depth-first
// order of classic build tools and is selected with [WithSortStrategy].
//
// # Queries
//
// [Graph.UpstreamProjects] and [Graph.DownstreamProjects] return direct or
// transitive dependencies and dependents. Results never contain the queried
// project, never contain duplicates, and are returned in build order rather
// than discovery order. Querying a project that is not in the graph fails
// with UNKNOWN_PROJECT ([ErrUnknownProject]).
//
// # Filtered Views
//
// Partial and resumed builds only run a subset of the reactor. [NewFiltered]
// wraps a graph with a whitelist; the resulting [FilteredGraph] answers the
// same queries, but only ever returns whitelisted projects. Hidden projects
// are contracted rather than dropped, so dependency paths running through
// them are still reported:
//
//	// c → b → a, only a and c are built
//	f, _ := reactor.NewFiltered(g, []reactor.Project{a, c})
//	f.DownstreamProjects(a, false) // [c]
//
// Both types implement [ProjectGraph], the surface a reactor executor needs.
//
// # Concurrency
//
// Graphs never change after construction. All methods of [Graph] and
// [FilteredGraph] are safe for concurrent use; query results of a [Graph] are
// memoized in a per-graph cache keyed by project, direction and transitivity.
package reactor
