package searcher

import (
	"euphoria/game"
	"sync"
)

// chance stands for a move settled by dice or card draws. Every sampled
// outcome gets its own decision child, keyed by the hash of the state it
// produced. Rerolls and draws fan out widely, so outcomes are looked up by
// hash rather than scanned.
type chance struct {
	sync.RWMutex
	parent   Node
	player   string
	outcomes map[game.StateHash]*decision
	rewards  float64
	visits   float64
}

func newChance(parent *decision) *chance {
	return &chance{
		parent:   parent,
		player:   parent.turn,
		outcomes: map[game.StateHash]*decision{},
	}
}

func (c *chance) SelectOrExpand(state game.State) (Node, game.State, bool) {
	c.Lock()
	defer c.Unlock()

	hash := state.Hash()
	child, seen := c.outcomes[hash]
	if !seen {
		if c.outcomes == nil {
			c.outcomes = map[game.StateHash]*decision{}
		}
		child = newDecision(c, c.player, state)
		c.outcomes[hash] = child
	}
	child.applyLoss()
	return child, state, seen
}

// outcome is the child for a state already reached through this move, or nil.
func (c *chance) outcome(hash game.StateHash) *decision {
	c.RLock()
	defer c.RUnlock()
	return c.outcomes[hash]
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()
	c.rewards += Loss
	c.visits++
}

func (c *chance) stats() (string, float64, float64) {
	c.RLock()
	defer c.RUnlock()
	return c.player, c.rewards, c.visits
}

func (c *chance) Visits() float64 {
	c.RLock()
	defer c.RUnlock()
	return c.visits
}

// Backup swaps the virtual loss for the real result.
func (c *chance) Backup(player string, score float64) Node {
	c.Lock()
	defer c.Unlock()
	c.rewards += computeReward(player, score, c.player) - Loss
	return c.parent
}
