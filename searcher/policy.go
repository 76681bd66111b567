package searcher

import "math"

// explorer ranks the children of a node by UCT,
// q/n + sqrt(c² ln N / n), where N counts the parent's visits.
type explorer struct {
	bonus float64 // c² ln N, shared by all children
}

func newExplorer(cSquared, parentVisits float64) explorer {
	if parentVisits == 0 {
		panic("parent has no visits")
	}
	return explorer{bonus: cSquared * math.Log(parentVisits)}
}

func (e explorer) score(rewards, visits float64) float64 {
	if visits == 0 {
		panic("child has no visits")
	}
	return rewards/visits + math.Sqrt(e.bonus/visits)
}
