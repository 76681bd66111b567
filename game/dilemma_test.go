package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
- an unsettled dilemma is offered when the turn ends, joining first
- joining with the matching card spends an authority token and keeps the rest
- declining the join offers the fight, which reveals the hidden recruit
- declining both leaves the dilemma open
- a single card of another type settles nothing, so nothing is offered
- joining with the last token ends the game
*/

func TestEthicalDilemma(t *testing.T) {
	// alice places on the generator and ends her turn with the dilemma open
	setup := func(t *testing.T, cards ...Artifact) *GameState {
		gs := newTestGame(t)
		l := &gs.Players[0]
		l.DilemmaResolved = false
		l.Dilemma = Bear
		l.Morale = 3
		l.Cards = cards
		l.Hidden = []Recruit{PhilTheSpy}
		place(t, gs, 2, "Generator")
		require.Equal(t, EndTurnPhase, gs.Phase)
		require.NoError(t, gs.Apply(Confirm()))
		return gs
	}

	t.Run("joining with the matching card", func(t *testing.T) {
		gs := setup(t, Bear, Book)
		authority := gs.Players[0].Authority
		require.Equal(t, PayForOptionalEffectPhase, gs.Phase)
		require.Equal(t, "JoinTheEstablishment", gs.Prompt().Ability)
		require.Equal(t, 0, gs.Current)

		require.NoError(t, gs.Apply(Drop(CardUnit(Bear))))
		require.Equal(t, ConfirmOptionalEffectPhase, gs.Phase)
		require.NoError(t, gs.Apply(Confirm()))

		l := gs.Players[0]
		require.True(t, l.DilemmaResolved)
		require.Equal(t, authority-1, l.Authority)
		require.Equal(t, []Artifact{Book}, l.Cards)
		require.Equal(t, []Recruit{PhilTheSpy}, l.Hidden)
		require.Equal(t, 1, gs.Turn)
		require.Equal(t, PlaceOrRetrievePhase, gs.Phase)
	})

	t.Run("fighting after declining the join", func(t *testing.T) {
		gs := setup(t, Book, Box)
		authority := gs.Players[0].Authority
		require.Equal(t, ConfirmOptionalEffectPhase, gs.Phase, "Two other cards are the only way to pay")
		require.Equal(t, "JoinTheEstablishment", gs.Prompt().Ability)

		require.NoError(t, gs.Apply(Decline()))
		require.Equal(t, ConfirmOptionalEffectPhase, gs.Phase)
		require.Equal(t, "FightTheOppressor", gs.Prompt().Ability)
		require.NoError(t, gs.Apply(Confirm()))

		l := gs.Players[0]
		require.True(t, l.DilemmaResolved)
		require.Equal(t, authority, l.Authority)
		require.Empty(t, l.Cards)
		require.Empty(t, l.Hidden)
		require.Contains(t, l.Active, PhilTheSpy)
		require.Equal(t, 1, gs.Turn)
	})

	t.Run("declining both", func(t *testing.T) {
		gs := setup(t, Bear, Book)

		require.NoError(t, gs.Apply(Decline()))
		require.Equal(t, "FightTheOppressor", gs.Prompt().Ability)
		require.NoError(t, gs.Apply(Decline()))

		l := gs.Players[0]
		require.False(t, l.DilemmaResolved)
		require.Len(t, l.Cards, 2)
		require.Equal(t, []Recruit{PhilTheSpy}, l.Hidden)
		require.Equal(t, 1, gs.Turn)
	})

	t.Run("one card of another type", func(t *testing.T) {
		gs := setup(t, Book)

		require.Equal(t, 1, gs.Turn, "Nothing should be offered")
		require.False(t, gs.Players[0].DilemmaResolved)
	})

	t.Run("joining with the last token", func(t *testing.T) {
		gs := newTestGame(t)
		l := &gs.Players[0]
		l.DilemmaResolved = false
		l.Dilemma = Bear
		l.Cards = []Artifact{Bear}
		l.Authority = 1
		place(t, gs, 2, "Generator")
		require.NoError(t, gs.Apply(Confirm()))
		require.Equal(t, ConfirmOptionalEffectPhase, gs.Phase)

		require.NoError(t, gs.Apply(Confirm()))

		require.True(t, gs.IsOver())
		require.Equal(t, "alice", gs.Winner())
	})
}
