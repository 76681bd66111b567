package agent

import (
	"euphoria/experiments/metrics"
	"euphoria/game"
	"euphoria/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	if len(policy) == 0 {
		return firstMove(state), metric
	}
	return findMax(policy), metric
}

func findMax(policy map[game.Move]float64) game.Move {
	var maxMove game.Move
	maxVisit := -1.0
	for move, visit := range policy {
		if visit > maxVisit || (visit == maxVisit && less(move, maxMove)) {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}

// less orders intents so ties between equally visited moves break the same
// way on every run.
func less(a, b game.Move) bool {
	x, okx := a.(game.Intent)
	y, oky := b.(game.Intent)
	if !okx || !oky {
		return false
	}
	return x.String() < y.String()
}

func firstMove(state game.State) game.Move {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil
	}
	return moves[0]
}
