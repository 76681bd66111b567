package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// MaxWorkers is the most workers a player can own.
const MaxWorkers = 4

// Worker is a die standing on a board cell.
type Worker struct {
	Owner int
	Pips  int
}

// Options configures a new game.
type Options struct {
	Players           []string
	Seed              uint64
	Revision          int
	StartingAuthority int
	StartingWorkers   int
	KnowledgeLimit    int
	MaxTurns          int // 0 plays until a player runs out of authority
	Penalties         []Penalty
	Debug             bool
}

// DefaultOptions returns the standard setup for the named players.
func DefaultOptions(players ...string) Options {
	return Options{
		Players:           players,
		Revision:          CurrentRevision,
		StartingAuthority: 10,
		StartingWorkers:   2,
		KnowledgeLimit:    16,
		MaxTurns:          400,
		Penalties:         MustCompilePenalties(DefaultPenalties()),
	}
}

// GameState is one game instance. All mutable state lives here; nothing is
// global, so any number of instances can be searched side by side.
type GameState struct {
	Names          []string
	Players        []Ledger
	Board          *Board     // static, shared between copies
	Workers        [][]Worker // per cell
	Stars          []uint8    // per cell, bitset of players with an authority token
	MarketPenalty  []int      // per cell, index into Penalties or -1
	Penalties      []Penalty  // shared between copies
	Influence      [NumAllegiances]int
	Deck           []Artifact
	Discard        []Artifact
	Rng            Rand
	Revision       int
	KnowledgeLimit int
	MaxTurns       int
	Debug          bool

	Phase       Phase
	Turn        int // whose turn it is
	Current     int // who supplies the next intent
	Turns       int
	Stack       []Frame
	Picked      Location
	PendingCell CellID
	Selection   []Location
	Tender      Payment
	Chosen      Grant
	Acted       bool
	Committed   bool // something in the current action can no longer be undone
	Checkpoint  *GameState
	Ranking     []int

	hooks []Hook
}

// NewGameState deals a new game. Every random choice of the setup is drawn
// from the seeded generator.
func NewGameState(opts Options) *GameState {
	board := CreateBoard()
	gs := &GameState{
		Names:          opts.Players,
		Board:          board,
		Workers:        make([][]Worker, len(board.Cells)),
		Stars:          make([]uint8, len(board.Cells)),
		MarketPenalty:  make([]int, len(board.Cells)),
		Penalties:      opts.Penalties,
		Rng:            Rand{Seed: opts.Seed},
		Revision:       opts.Revision,
		KnowledgeLimit: opts.KnowledgeLimit,
		MaxTurns:       opts.MaxTurns,
		Debug:          opts.Debug,
		Phase:          ChooseRecruitPhase,
		Picked:         noLocation,
		PendingCell:    NoCell,
		hooks:          Abilities(opts.Revision),
	}

	gs.Deck = newDeck()
	gs.Rng.Shuffle(len(gs.Deck), func(i, j int) { gs.Deck[i], gs.Deck[j] = gs.Deck[j], gs.Deck[i] })
	pool := recruitPool()
	gs.Rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	gs.Players = make([]Ledger, len(opts.Players))
	for i := range gs.Players {
		l := NewLedger(opts.StartingAuthority)
		for w := 0; w < opts.StartingWorkers; w++ {
			l.AddWorker(gs.Rng.Roll())
		}
		l.Hidden = append([]Recruit(nil), pool[2*i:2*i+2]...)
		l.TieBreak = gs.Rng.Intn(1 << 30)
		gs.Players[i] = l
	}

	for i, c := range board.Cells {
		gs.MarketPenalty[i] = -1
		if c.Kind.IsMarket() && len(gs.Penalties) > 0 {
			gs.MarketPenalty[i] = gs.Rng.Intn(len(gs.Penalties))
		}
	}
	for i := range gs.Players {
		gs.Players[i].Dilemma = Artifact(gs.Rng.Intn(int(NumArtifacts)))
	}

	log.Info().Strs("players", opts.Players).Uint64("seed", opts.Seed).Int("revision", opts.Revision).Msg("new game")
	return gs
}

func (gs *GameState) Copy() *GameState {
	c := *gs
	c.Players = make([]Ledger, len(gs.Players))
	for i := range gs.Players {
		c.Players[i] = gs.Players[i].Copy()
	}
	c.Workers = make([][]Worker, len(gs.Workers))
	for i, ws := range gs.Workers {
		c.Workers[i] = append([]Worker(nil), ws...)
	}
	c.Stars = append([]uint8(nil), gs.Stars...)
	c.MarketPenalty = append([]int(nil), gs.MarketPenalty...)
	c.Deck = append([]Artifact(nil), gs.Deck...)
	c.Discard = append([]Artifact(nil), gs.Discard...)
	c.Stack = append([]Frame(nil), gs.Stack...)
	c.Selection = append([]Location(nil), gs.Selection...)
	c.Ranking = append([]int(nil), gs.Ranking...)
	return &c
}

// Player names whoever supplies the next intent.
func (gs *GameState) Player() string {
	return gs.Names[gs.Current]
}

// Play applies a move to a copy of the state. The move must be legal.
func (gs *GameState) Play(move Move) State {
	in, ok := move.(Intent)
	if !ok {
		panic(fmt.Sprintf("unexpected move type %T", move))
	}
	next := gs.Copy()
	if err := next.Apply(in); err != nil {
		panic(err)
	}
	return next
}

// Winner is empty until the game is over.
func (gs *GameState) Winner() string {
	if gs.Phase != GameoverPhase || len(gs.Ranking) == 0 {
		return ""
	}
	return gs.Names[gs.Ranking[0]]
}

// Reseed returns a copy whose future dice and draws come from seed, with the
// unseen deck reshuffled. Searchers use it to sample hidden information.
func (gs *GameState) Reseed(seed uint64) State {
	c := gs.Copy()
	c.Rng = Rand{Seed: seed}
	c.Rng.Shuffle(len(c.Deck), func(i, j int) { c.Deck[i], c.Deck[j] = c.Deck[j], c.Deck[i] })
	return c
}

func (gs *GameState) IsOver() bool {
	return gs.Phase == GameoverPhase
}
