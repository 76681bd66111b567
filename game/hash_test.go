package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
- selecting workers to retrieve in either order digests alike, before and
  after the retrieval
- tendering the same units in either order digests alike
- costs and benefits that print alike but differ digest apart
*/

func TestDigestOrder(t *testing.T) {
	t.Run("retrieval selection", func(t *testing.T) {
		gs := newTestGame(t)
		generator, farm := cellID(t, gs, "Generator"), cellID(t, gs, "Farm")
		gs.Players[0].Hand = nil
		gs.Players[0].Morale = 3
		gs.Workers[generator] = []Worker{{Owner: 0, Pips: 2}}
		gs.Workers[farm] = []Worker{{Owner: 0, Pips: 3}}
		a, b := gs.Copy(), gs.Copy()

		require.NoError(t, a.Apply(Pick(BoardWorker(generator, 2))))
		require.NoError(t, a.Apply(Pick(BoardWorker(farm, 3))))
		require.NoError(t, b.Apply(Pick(BoardWorker(farm, 3))))
		require.NoError(t, b.Apply(Pick(BoardWorker(generator, 2))))
		require.Equal(t, a.Digest(), b.Digest())

		for _, s := range []*GameState{a, b} {
			require.NoError(t, s.Apply(Drop(HandDie(0))))
			require.NoError(t, s.Apply(Confirm()))
			require.Equal(t, EndTurnPhase, s.Phase)
			require.Len(t, s.Players[0].Hand, 2)
		}
		require.Equal(t, a.Players[0].Hand, b.Players[0].Hand)
		require.Equal(t, a.Digest(), b.Digest())
	})

	t.Run("tender", func(t *testing.T) {
		gs := newTestGame(t)
		gs.Players[0].Goods[Water] = 2
		gs.Players[0].Goods[Food] = 2
		gs.Suspend(Frame{
			Step:        StepAwaitPayment,
			Cell:        NoCell,
			Cost:        Mix{Of: Kinds(Water, Food), N: 2},
			Actor:       0,
			Responder:   0,
			ResumePhase: PayCostPhase,
			OnPaid:      StepSkip,
			OnDecline:   StepSkip,
			Action:      AbilityAction,
		})
		a, b := gs.Copy(), gs.Copy()

		require.NoError(t, a.Apply(Drop(GoodsUnit(Water))))
		require.NoError(t, a.Apply(Drop(GoodsUnit(Food))))
		require.NoError(t, b.Apply(Drop(GoodsUnit(Food))))
		require.NoError(t, b.Apply(Drop(GoodsUnit(Water))))
		require.Equal(t, ConfirmPayCostPhase, a.Phase)
		require.Equal(t, a.Digest(), b.Digest())

		require.NoError(t, a.Apply(Confirm()))
		require.NoError(t, b.Apply(Confirm()))
		require.Equal(t, 1, a.Players[0].Goods[Water])
		require.Equal(t, 1, a.Players[0].Goods[Food])
		require.Equal(t, a.Digest(), b.Digest())
	})
}

func TestDigestStructure(t *testing.T) {
	// a state awaiting payment of c and collection of b
	pending := func(t *testing.T, c Cost, b Benefit) uint64 {
		gs := newTestGame(t)
		gs.push(Frame{Step: StepAwaitPayment, Cell: NoCell, Cost: c, Original: c, Benefit: b, Action: AbilityAction})
		return gs.Digest()
	}

	costs := []struct {
		name string
		a, b Cost
	}{
		{"pay and mix of one kind", Pay{Kind: Water, N: 1}, Mix{Of: Kinds(Water), N: 1}},
		{"member closed by default", Member{Of: Icarite}, Member{Of: Icarite, Else: Closed{}}},
		{"mix rewritten by a hook", Mix{Of: Kinds(Bliss, Food), N: 1}, Mix{Of: Kinds(Bliss, Food), N: 1, Via: "BrianTheViticulturist"}},
	}
	for _, tc := range costs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.a.String(), tc.b.String())
			require.NotEqual(t, pending(t, tc.a, nil), pending(t, tc.b, nil))
		})
	}

	t.Run("one of and all of a single benefit", func(t *testing.T) {
		gain := Gain{Kind: Water, N: 1}
		a, b := OneOf{Alts: []Benefit{gain}}, All{Parts: []Benefit{gain}}
		require.Equal(t, a.String(), b.String())
		require.NotEqual(t, pending(t, Free{}, a), pending(t, Free{}, b))
	})

	t.Run("equal structures digest alike", func(t *testing.T) {
		c := Then{Fixed: Pay{Kind: Energy, N: 4}, Rest: Member{Of: Euphorian}}
		b := All{Parts: []Benefit{Authority{Of: Euphorian}, Influence{Of: Euphorian, N: 1}}}
		require.Equal(t, pending(t, c, b), pending(t, c, b))
	})
}
