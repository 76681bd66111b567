package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	t.Run("total over every phase and intent", func(t *testing.T) {
		for p := Phase(0); p < NumPhases; p++ {
			for k := PickIntent; k <= DeclineIntent; k++ {
				for w := NoWhere; w <= RecruitSlot; w++ {
					next, ok := Transition(p, Intent{Kind: k, Loc: Location{Where: w, Cell: NoCell}})
					if !ok {
						require.Equal(t, p, next, "A refused intent should not move %s", p)
					}
					require.True(t, next >= 0 && next < NumPhases)
				}
			}
		}
	})

	for _, tc := range []struct {
		from Phase
		in   Intent
		to   Phase
		ok   bool
	}{
		{PlaceOrRetrievePhase, Pick(HandDie(3)), PlacePhase, true},
		{PlaceOrRetrievePhase, Pick(BoardWorker(0, 3)), RetrievePhase, true},
		{PlaceOrRetrievePhase, Confirm(), PlaceOrRetrievePhase, false},
		{PlacePhase, Drop(BoardCell(0)), ConfirmPlacePhase, true},
		{ConfirmPlacePhase, Decline(), PlacePhase, true},
		{ConfirmPayCostPhase, Pick(GoodsUnit(Water)), PayCostPhase, true},
		{PayCostPhase, Confirm(), PayCostPhase, false},
		{EndTurnPhase, Confirm(), PlaceOrRetrievePhase, true},
		{GameoverPhase, Confirm(), GameoverPhase, false},
	} {
		next, ok := Transition(tc.from, tc.in)
		require.Equal(t, tc.ok, ok, "%s on %s", tc.in, tc.from)
		require.Equal(t, tc.to, next, "%s on %s", tc.in, tc.from)
	}
}

func TestPhaseKinds(t *testing.T) {
	for p := Phase(0); p < NumPhases; p++ {
		require.NotEmpty(t, p.Description(), "%s has no prompt", p)
		require.False(t, p.IsPayment() && p.IsBenefit())
		if p.IsPayment() || p.IsBenefit() {
			require.Equal(t, p, p.confirmed(p.IsConfirm()), "%s should map onto itself", p)
		}
	}
	require.Equal(t, ConfirmDiscardPhase, DiscardCardsPhase.confirmed(true))
	require.Equal(t, CollectOptionalBenefitPhase, ConfirmOptionalBenefitPhase.confirmed(false))
}

func TestNormalizedIntent(t *testing.T) {
	in := Intent{Kind: DropIntent, Loc: Location{Where: Goods, Cell: 4, Pips: 6, Kind: Gold, Card: Bat}}
	require.Equal(t, Drop(GoodsUnit(Gold)), in.Normalized())
	require.Equal(t, Confirm(), Intent{Kind: ConfirmIntent, Loc: Location{Where: Deck}}.Normalized())
}
