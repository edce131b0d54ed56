package reactor_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/reactor/pkg/reactor"
)

func ExampleNew() {
	api := reactor.NewDescriptor(reactor.MustParseGA("org.example:api"))
	core := reactor.NewDescriptor(reactor.MustParseGA("org.example:core"), api.ID())
	app := reactor.NewDescriptor(reactor.MustParseGA("org.example:app"), core.ID(), api.ID())

	g, err := reactor.New([]reactor.Project{app, core, api})
	if err != nil {
		panic(err)
	}
	for _, p := range g.SortedProjects() {
		fmt.Println(p.ID())
	}
	// Output:
	// org.example:api
	// org.example:core
	// org.example:app
}

func ExampleGraph_DownstreamProjects() {
	api := reactor.NewDescriptor(reactor.MustParseGA("org.example:api"))
	core := reactor.NewDescriptor(reactor.MustParseGA("org.example:core"), api.ID())
	app := reactor.NewDescriptor(reactor.MustParseGA("org.example:app"), core.ID())

	g, _ := reactor.New([]reactor.Project{api, core, app})

	direct, _ := g.DownstreamProjects(api, false)
	all, _ := g.DownstreamProjects(api, true)
	fmt.Println(reactor.IDs(direct))
	fmt.Println(reactor.IDs(all))
	// Output:
	// [org.example:core]
	// [org.example:core org.example:app]
}

func ExampleNewFiltered() {
	a := reactor.NewDescriptor(reactor.MustParseGA("g:a"))
	b := reactor.NewDescriptor(reactor.MustParseGA("g:b"), a.ID())
	c := reactor.NewDescriptor(reactor.MustParseGA("g:c"), b.ID())

	g, _ := reactor.New([]reactor.Project{a, b, c})
	f, _ := reactor.NewFiltered(g, []reactor.Project{a, c})

	down, _ := f.DownstreamProjects(a, false)
	fmt.Println(reactor.IDs(f.SortedProjects()))
	fmt.Println(reactor.IDs(down))
	// Output:
	// [g:a g:c]
	// [g:c]
}

func ExampleCycleError() {
	a := reactor.NewDescriptor(reactor.MustParseGA("g:a"), reactor.MustParseGA("g:b"))
	b := reactor.NewDescriptor(reactor.MustParseGA("g:b"), reactor.MustParseGA("g:a"))

	_, err := reactor.New([]reactor.Project{a, b})
	var cycle *reactor.CycleError
	if errors.As(err, &cycle) {
		fmt.Println(cycle)
	}
	fmt.Println(err)
	// Output:
	// g:a → g:b → g:a
	// CYCLE_DETECTED: dependency cycle in reactor: g:a → g:b → g:a
}
