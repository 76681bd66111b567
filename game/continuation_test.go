package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

/*
- suspended frames resume strictly last in, first out, each restoring the
  phase and player that were active when it was suspended
- a discard with several distinct choices waits for the player, a forced
  one does not
- declining a payment before anything committed restores the state from
  before the action; after a commit it is refused
*/

func TestContinuationLIFO(t *testing.T) {
	gs := newTestGame(t)
	for i := range gs.Players {
		gs.Players[i].Goods[Water] = 10
		gs.Players[i].Goods[Food] = 10
	}
	phases := []Phase{
		PayCostPhase,
		PayForOptionalEffectPhase,
		DiscardCardsPhase,
		PayPenaltyPhase,
		PayCostPhase,
		PayForOptionalEffectPhase,
		DiscardCardsPhase,
	}

	for i, p := range phases {
		gs.Suspend(Frame{
			Step:        StepAwaitPayment,
			Cell:        NoCell,
			Cost:        Mix{Of: Kinds(Water, Food), N: 1},
			Actor:       0,
			Responder:   i % 2,
			ResumePhase: p,
			OnDecline:   StepSkip,
			Ability:     fmt.Sprintf("frame-%d", i),
			Action:      AbilityAction,
		})
		require.Equal(t, p, gs.Phase, "Suspending should switch to the frame's phase")
		require.Equal(t, i%2, gs.Current)
	}
	require.Len(t, gs.Stack, len(phases))
	for i := 1; i < len(phases); i++ {
		require.Equal(t, phases[i-1], gs.Stack[i].ReturnPhase)
	}

	for i := len(phases) - 1; i >= 0; i-- {
		require.Equal(t, fmt.Sprintf("frame-%d", i), gs.Prompt().Ability, "Frames should resume last in, first out")
		require.Equal(t, phases[i], gs.Phase)
		require.Equal(t, i%2, gs.Current)

		if i == 3 {
			require.NoError(t, gs.Apply(Decline()))
			continue
		}
		require.NoError(t, gs.Apply(Drop(GoodsUnit(Water))))
		require.Equal(t, phases[i].confirmed(true), gs.Phase)
		require.NoError(t, gs.Apply(Confirm()))
	}

	require.Empty(t, gs.Stack)
	require.Equal(t, PlaceOrRetrievePhase, gs.Phase)
	require.Equal(t, 0, gs.Current)
	require.Equal(t, 10-4, gs.Players[0].Goods[Water], "Alice answered the even frames")
	require.Equal(t, 10-2, gs.Players[1].Goods[Water], "Bob declined one of his three frames")
}

func TestDiscard(t *testing.T) {
	discard := func(gs *GameState) {
		gs.push(Frame{Step: StepMoraleCheck, Cell: NoCell, Actor: 0, Responder: 0, Action: PlaceAction})
		gs.advance()
	}

	t.Run("distinct cards wait for a choice", func(t *testing.T) {
		gs := newTestGame(t)
		gs.Players[0].Cards = []Artifact{Book, Bat, Bear}
		gs.Players[0].Morale = 2

		discard(gs)

		require.Equal(t, DiscardCardsPhase, gs.Phase)
		require.Len(t, gs.Players[0].Cards, 3, "Nothing should be discarded automatically")
		require.Equal(t, Cards{N: 1}, gs.PendingCost())
		require.ElementsMatch(t, []Move{Drop(CardUnit(Book)), Drop(CardUnit(Bat)), Drop(CardUnit(Bear))}, gs.LegalMoves())

		require.NoError(t, gs.Apply(Drop(CardUnit(Bat))))
		require.Equal(t, ConfirmDiscardPhase, gs.Phase)
		require.NoError(t, gs.Apply(Confirm()))

		require.Equal(t, []Artifact{Book, Bear}, gs.Players[0].Cards)
		require.Contains(t, gs.Discard, Bat)
		require.Equal(t, PlaceOrRetrievePhase, gs.Phase)
	})

	t.Run("a single card type is discarded at once", func(t *testing.T) {
		gs := newTestGame(t)
		gs.Players[0].Cards = []Artifact{Bat, Bat}

		discard(gs)

		require.Equal(t, []Artifact{Bat}, gs.Players[0].Cards)
		require.Empty(t, gs.Stack)
	})
}

func TestAbort(t *testing.T) {
	t.Run("before anything committed", func(t *testing.T) {
		gs := newTestGame(t)
		gs.Players[0].Goods[Gold] = 2
		gs.Players[0].Goods[Stone] = 1
		gs.Players[0].Goods[Clay] = 1
		require.NoError(t, gs.Apply(Pick(HandDie(3))))
		require.NoError(t, gs.Apply(Drop(BoardCell(cellID(t, gs, "NimbusLoft")))))
		before := gs.Digest()

		require.NoError(t, gs.Apply(Confirm()))
		require.Equal(t, PayCostPhase, gs.Phase)
		require.NotContains(t, gs.LegalMoves(), Move(Decline()), "Aborting is not offered to agents")
		require.NoError(t, gs.Apply(Drop(GoodsUnit(Gold))))
		require.NoError(t, gs.Apply(Decline()))

		require.Equal(t, ConfirmPlacePhase, gs.Phase)
		require.Equal(t, before, gs.Digest(), "Aborting should restore the state from before the action")
		require.Equal(t, []int{2, 3}, gs.Players[0].Hand)
	})

	t.Run("after a commit", func(t *testing.T) {
		gs := newTestGame(t)
		gs.Players[0].Goods[Bliss] = 1
		gs.Players[0].Goods[Water] = 1
		gs.Players[0].Goods[Food] = 1

		place(t, gs, 3, "BreezeBar")
		require.Equal(t, PayCostPhase, gs.Phase)
		require.Equal(t, 0, gs.Players[0].Goods[Bliss], "The fixed part is paid")

		before := gs.Digest()
		require.ErrorIs(t, gs.Apply(Decline()), ErrDeclineNotAllowed)
		require.Equal(t, before, gs.Digest())

		require.NoError(t, gs.Apply(Drop(GoodsUnit(Food))))
		require.NoError(t, gs.Apply(Confirm()))
		require.Equal(t, 1, gs.Players[0].Goods[Water])
	})
}
