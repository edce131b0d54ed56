package schedule

import "github.com/matzehuels/reactor/pkg/reactor"

// Waves groups the projects of g into levels: every project's direct
// dependencies lie in earlier levels, so each level could build in parallel
// once the previous one finished. Projects keep build order within a level.
func Waves(g reactor.ProjectGraph) ([][]reactor.Project, error) {
	level := make(map[reactor.GA]int)
	var waves [][]reactor.Project
	for _, p := range g.SortedProjects() {
		deps, err := g.UpstreamProjects(p, false)
		if err != nil {
			return nil, err
		}
		l := 0
		for _, d := range deps {
			l = max(l, level[d.ID()]+1)
		}
		level[p.ID()] = l
		if l == len(waves) {
			waves = append(waves, nil)
		}
		waves[l] = append(waves[l], p)
	}
	return waves, nil
}
