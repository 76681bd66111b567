package searcher

import (
	"euphoria/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome (negate from opponent perspective)

// MaxCutoff bounds a rollout when no cutoff is configured.
const MaxCutoff = 10000

// Node is a vertex of the search tree. Rewards are kept from the perspective
// of the player whose move led to the node.
type Node interface {
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	Backup(player string, score float64) Node
	Visits() float64
	applyLoss()
	stats() (player string, rewards float64, visits float64)
}

// computeReward converts a score reported for player into the reward of the
// node owner. An empty player is a draw.
func computeReward(player string, score float64, owner string) float64 {
	if player == "" {
		return 0
	}
	if player == owner {
		return score
	}
	return -score
}
