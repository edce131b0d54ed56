// Package pkg provides the libraries behind the reactor build-order tool.
//
// # Overview
//
// A reactor is the set of modules taking part in one multi-module build.
// Reactor validates the module graph of such a build and answers the
// questions a build driver asks: in which order to build, what each module
// depends on, what depends on it, and which modules a partial build runs.
//
// # Architecture
//
// The typical data flow:
//
//	reactor.toml / reactor.yaml / reactor.json
//	         ↓
//	    [manifest] (decode + validate)
//	         ↓
//	    [reactor] (graph, cycle check, build order)
//	         ↓
//	    [selector] (partial build → filtered graph)
//	         ↓
//	    [schedule] / [render] / [io] (execute, draw, export)
//
// [pipeline] runs these stages with caching and logging and is what the CLI
// uses.
//
// # Quick Start
//
//	m, _ := manifest.Load("reactor.toml")
//	projects, _ := m.ReactorProjects()
//
//	g, err := reactor.New(projects)
//	if err != nil {
//	    return err // DUPLICATE_PROJECT or CYCLE_DETECTED
//	}
//	for _, p := range g.SortedProjects() {
//	    fmt.Println(p.ID())
//	}
//
// # Main Packages
//
// [reactor] - The core: project identities, the reactor graph with duplicate
// and cycle validation, Kahn and depth-first build orders, upstream and
// downstream queries, and filtered views for partial builds.
//
// [errors] - Coded errors shared by every package (DUPLICATE_PROJECT,
// CYCLE_DETECTED, UNKNOWN_PROJECT, ...).
//
// [manifest] - Reactor descriptor files in TOML, YAML or JSON.
//
// [selector] - Project selection: explicit lists, exclusions, also-make,
// also-make-dependents and resume-from.
//
// [schedule] - A parallel executor that starts each module once its upstream
// projects are built, and build waves for dry runs.
//
// [render] - Graphviz DOT export and SVG/PNG rendering.
//
// [io] - JSON build plans.
//
// ## Infrastructure
//
// [pipeline] - load → build → select → render, shared by all commands.
//
// [cache] - Byte cache for rendered output (file-backed or disabled).
//
// [observability] - Hooks for plan, cache and schedule events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/reactor/...      # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [reactor]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/reactor
// [errors]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/errors
// [manifest]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/manifest
// [selector]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/selector
// [schedule]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/schedule
// [render]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/reactor/pkg/buildinfo
package pkg
