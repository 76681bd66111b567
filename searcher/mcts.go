package searcher

import (
	"euphoria/experiments/metrics"
	"euphoria/game"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// Segment is one move of the game since the last search, with the hash of
// the state it led to.
type Segment struct {
	Move      game.Move
	StateHash game.StateHash
}

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(u *MCTS) {
		if duration > 0 {
			u.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(u *MCTS) {
		if episodes > 0 {
			u.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(u *MCTS) {
		if depth > 0 {
			u.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateEconomy,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit count of every root
// move. lineage lists the moves played since the previous search; the
// subtree they lead to is reused when it was explored. The search stops
// when the episode count or the duration runs out, whichever is first.
func (m *MCTS) Simulate(state game.State, lineage []Segment) (map[game.Move]float64, metrics.SearchMetric) {
	m.findRoot(lineage, state)

	m.metrics.Start(m.goroutines, m.cutoff)
	b := newBudget(m.episodes, m.duration)
	p := playout{cutoff: m.cutoff, evaluate: m.evaluate, metrics: m.metrics}

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()
			for b.next() {
				m.simulate(state, rng, p)
				m.metrics.AddEpisode()
			}
		}(rand.New(rand.NewSource(rand.Uint64())))
	}
	wg.Wait()

	return m.root.Policy(), m.metrics.Complete()
}

// budget hands out episodes to the workers.
type budget struct {
	bounded   bool
	remaining atomic.Int64
	deadline  time.Time // zero when the search is not timed
}

func newBudget(episodes int, duration time.Duration) *budget {
	b := &budget{bounded: episodes > 0}
	b.remaining.Store(int64(episodes))
	if duration > 0 {
		b.deadline = time.Now().Add(duration)
	}
	return b
}

func (b *budget) next() bool {
	if !b.deadline.IsZero() && !time.Now().Before(b.deadline) {
		return false
	}
	return !b.bounded || b.remaining.Add(-1) >= 0
}

func (m *MCTS) findRoot(path []Segment, state game.State) {
	root := traverse(m.root, path)
	if root == nil || root.hash != state.Hash() {
		m.root = newDecision(nil, "", state)
		m.metrics.SetTreeReset(true)
	} else {
		root.parent = nil
		m.root = root
		m.metrics.SetTreeReset(false)
	}
}

func traverse(root *decision, path []Segment) *decision {
	if root == nil || len(path) == 0 {
		return nil
	}

	node := root
	for _, segment := range path {
		var child Node
		for i, move := range node.explored {
			if move == segment.Move {
				child = node.children[i]
				break
			}
		}
		if child == nil { // Node has not expanded this move
			return nil
		}

		switch child := child.(type) {
		case *decision:
			if child.hash != segment.StateHash {
				log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", child.hash, segment.StateHash)
				return nil
			}
			node = child
		case *chance:
			grandChild := child.outcome(segment.StateHash)
			if grandChild == nil {
				return nil
			}
			node = grandChild
		default:
			panic("Unexpected node type")
		}
	}
	return node
}

// simulate runs one episode on a determinization of state: dice and the
// unseen deck are resampled so chance nodes see varied outcomes.
func (m *MCTS) simulate(state game.State, rng *rand.Rand, p playout) {
	sampled := state.Reseed(rng.Uint64())
	leaf, leafState := selectThenExpand(m.root, sampled)
	player, score := p.run(leafState, rng)
	backup(leaf, player, score)
}

func selectThenExpand(root Node, state game.State) (Node, game.State) {
	node := root
	for {
		child, next, selected := node.SelectOrExpand(state)
		state = next
		if !selected || child == node {
			return child, state
		}
		node = child
	}
}

// playout finishes an episode with uniformly random moves.
type playout struct {
	cutoff   int
	evaluate game.Evaluate
	metrics  metrics.Collector
}

// run plays from state until the game ends or cutoff moves were made. A
// finished game scores a win for its winner; otherwise the evaluation
// scores the state for the player to move.
func (p playout) run(state game.State, rng *rand.Rand) (string, float64) {
	moves := state.LegalMoves()
	for depth := 0; len(moves) > 0 && depth < p.cutoff; depth++ {
		state = state.Play(moves[rng.Intn(len(moves))])
		moves = state.LegalMoves()
	}
	if len(moves) == 0 {
		p.metrics.AddFullPlayout()
		return state.Winner(), Win
	}
	return state.Player(), p.evaluate(state)
}

func backup(leaf Node, player string, score float64) {
	for node := leaf; node != nil; {
		node = node.Backup(player, score)
	}
}
