package game

// Move is anything a State can play. Stochastic moves lead to outcomes
// decided by dice or card draws.
type Move interface {
	IsStochastic() bool
}

type StateHash uint64

// State should be immutable: operations on State always return a new copy.
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
	// Reseed samples the hidden future: dice and the unseen deck.
	Reseed(seed uint64) State
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
