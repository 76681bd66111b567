package searcher

import (
	"euphoria/game"
	"math"
	"sync"

	"golang.org/x/exp/rand"
)

type decision struct {
	sync.RWMutex
	parent     Node
	player     string // who moved into this node
	turn       string // who moves from this node
	hash       game.StateHash
	unexplored []game.Move
	explored   []game.Move
	children   []Node
	rewards    float64
	visits     float64
}

func newDecision(parent Node, player string, state game.State) *decision {
	moves := state.LegalMoves()
	unexplored := make([]game.Move, len(moves))
	copy(unexplored, moves)
	rand.Shuffle(len(unexplored), func(i, j int) {
		unexplored[i], unexplored[j] = unexplored[j], unexplored[i]
	})

	return &decision{
		parent:     parent,
		player:     player,
		turn:       state.Player(),
		hash:       state.Hash(),
		unexplored: unexplored,
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]Node, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		child, childState := d.expands(state)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.selects()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) expands(state game.State) (Node, game.State) {
	last := len(d.unexplored) - 1
	move := d.unexplored[last]
	d.unexplored = d.unexplored[:last]

	childState := state.Play(move)
	var child Node
	if move.IsStochastic() {
		child = newChance(d)
	} else {
		child = newDecision(d, d.turn, childState)
	}
	d.explored = append(d.explored, move)
	d.children = append(d.children, child)
	return child, childState
}

func (d *decision) selects() int {
	// the root has no visits until the first backup lands
	e := newExplorer(CSquared, max(d.visits, 1))

	best, bestScore := -1, math.Inf(-1)
	for i, child := range d.children {
		_, rewards, visits := child.stats()
		if score := e.score(rewards, visits); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) stats() (string, float64, float64) {
	d.RLock()
	defer d.RUnlock()

	return d.player, d.rewards, d.visits
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

func (d *decision) Backup(player string, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Root never receives a virtual loss
		d.reverseLoss()
	}

	d.rewards += computeReward(player, score, d.player)
	d.visits++

	return d.parent
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// Policy returns the visit count of every explored move.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		policy[d.explored[i]] = child.Visits()
	}
	return policy
}
