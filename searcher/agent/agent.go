package agent

import (
	"euphoria/experiments/metrics"
	"euphoria/game"
	"euphoria/searcher"
)

type Agent interface {
	// FindMove returns a move and performance metrics (if collected) from the simulation process
	FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric)
}
