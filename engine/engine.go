package engine

import "euphoria/experiments/metrics"

// MaxMoves bounds a game in intents, on top of the game's own turn limit.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game until it is over or MaxMoves intents were played
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
