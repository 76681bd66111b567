package searcher

import "euphoria/game"

type mockMove struct {
	id         int
	stochastic bool
}

func (m mockMove) IsStochastic() bool {
	return m.stochastic
}

type mockState struct {
	player string
	moves  []game.Move
	played []game.Move
	hash   game.StateHash
	winner string
}

func (m mockState) Player() string {
	return m.player
}

func (m mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m mockState) Play(move game.Move) game.State {
	played := append(append([]game.Move(nil), m.played...), move)
	return mockState{player: m.player, played: played, hash: m.hash}
}

func (m mockState) Hash() game.StateHash {
	return m.hash
}

func (m mockState) Winner() string {
	return m.winner
}

func (m mockState) Reseed(uint64) game.State {
	return m
}
