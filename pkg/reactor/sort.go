package reactor

import (
	"container/heap"
	"strings"

	rerr "github.com/matzehuels/reactor/pkg/errors"
)

// SortStrategy selects how the build order is derived. Both strategies place
// every project after its dependencies and are reproducible for a given
// input order; they differ in how unrelated projects are interleaved.
type SortStrategy int

const (
	// SortKahn emits, at every step, the ready project (all dependencies
	// emitted) that came first in the input.
	SortKahn SortStrategy = iota

	// SortDepthFirst visits projects in input order and emits each one after
	// recursively emitting its dependencies in declaration order. This is the
	// order classic multi-module build tools produce.
	SortDepthFirst
)

func (s SortStrategy) String() string {
	switch s {
	case SortKahn:
		return "kahn"
	case SortDepthFirst:
		return "depth-first"
	}
	return "unknown"
}

// ParseSortStrategy parses "kahn" or "depth-first" (also "dfs").
func ParseSortStrategy(s string) (SortStrategy, error) {
	switch strings.ToLower(s) {
	case "", "kahn":
		return SortKahn, nil
	case "depth-first", "dfs":
		return SortDepthFirst, nil
	}
	return 0, rerr.New(rerr.ErrCodeInvalidInput, "unknown sort strategy %q (want kahn or depth-first)", s)
}

func (g *Graph) sort(s SortStrategy) ([]int, error) {
	switch s {
	case SortKahn:
		return g.kahnOrder()
	case SortDepthFirst:
		return g.depthFirstOrder(), nil
	}
	return nil, rerr.New(rerr.ErrCodeInvalidInput, "unknown sort strategy %d", s)
}

// readyQueue is a min-heap of input indices.
type readyQueue []int

func (q readyQueue) Len() int           { return len(q) }
func (q readyQueue) Less(i, j int) bool { return q[i] < q[j] }
func (q readyQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *readyQueue) Push(x any)        { *q = append(*q, x.(int)) }
func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

func (g *Graph) kahnOrder() ([]int, error) {
	n := len(g.projects)
	pending := make([]int, n) // unresolved dependencies per project
	ready := &readyQueue{}
	for i := range n {
		pending[i] = len(g.upstream[i])
		if pending[i] == 0 {
			*ready = append(*ready, i)
		}
	}
	heap.Init(ready)

	order := make([]int, 0, n)
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		order = append(order, i)
		for _, dependent := range g.downstream[i] {
			pending[dependent]--
			if pending[dependent] == 0 {
				heap.Push(ready, dependent)
			}
		}
	}

	if len(order) != n {
		var stuck []string
		for i := range n {
			if pending[i] > 0 {
				stuck = append(stuck, g.projects[i].ID().String())
			}
		}
		return nil, rerr.New(rerr.ErrCodeCycleDetected, "projects could not be ordered: %s", strings.Join(stuck, ", "))
	}
	return order, nil
}

func (g *Graph) depthFirstOrder() []int {
	visited := make([]bool, len(g.projects))
	order := make([]int, 0, len(g.projects))

	var visit func(i int)
	visit = func(i int) {
		visited[i] = true
		for _, dep := range g.upstream[i] {
			if !visited[dep] {
				visit(dep)
			}
		}
		order = append(order, i)
	}

	for i := range g.projects {
		if !visited[i] {
			visit(i)
		}
	}
	return order
}
