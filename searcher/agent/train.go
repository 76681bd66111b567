package agent

import (
	"euphoria/experiments/metrics"
	"euphoria/game"
	"euphoria/searcher"
	"math"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play: moves are sampled in
// proportion to their visit counts, sharpened by a temperature below 1.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &trainingAgent{mcts: mcts, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a *trainingAgent) FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	if len(policy) == 0 {
		return firstMove(state), metric
	}
	policy = adjustTemperature(policy, a.temperature)
	return sample(policy, ordered(state, policy), a.rng.Float64()), metric
}

func adjustTemperature(policy map[game.Move]float64, temperature float64) map[game.Move]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Move]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// ordered lists the policy's moves in legal move order, so sampling with the
// same seed picks the same move.
func ordered(state game.State, policy map[game.Move]float64) []game.Move {
	var moves []game.Move
	for _, m := range state.LegalMoves() {
		if _, ok := policy[m]; ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func sample(policy map[game.Move]float64, moves []game.Move, sampled float64) game.Move {
	cumulative := 0.0
	var lastMove game.Move
	for _, move := range moves {
		lastMove = move
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}
