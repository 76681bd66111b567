package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
- placement penalties rule out cells for players without a token on the
  market carrying them, and a die with nowhere to go cannot be picked
- a closed market carries no penalty
- retrieving without paying costs an extra morale under LoseMoreMorale
- the turn counters are net: paying takes back what was gained
- penalty conditions see the turn's net gains, card draws and new workers
- a penalty carried by two open markets applies once
*/

// openWithPenalty opens EuphorianMarket with bob's token on it and the named
// penalty, so the penalty applies to alice only.
func openWithPenalty(t *testing.T, gs *GameState, name string) CellID {
	t.Helper()
	market := cellID(t, gs, "EuphorianMarket")
	index := -1
	for i, p := range gs.Penalties {
		if p.Name == name {
			index = i
		}
	}
	require.GreaterOrEqual(t, index, 0, "no penalty %s", name)
	gs.MarketPenalty[market] = index
	gs.Stars[market] = 1 << 1
	return market
}

func TestPlacementPenalties(t *testing.T) {
	t.Run("no icarite workers", func(t *testing.T) {
		gs := newTestGame(t)
		openWithPenalty(t, gs, "NoIcariteWorkers")
		loft, mine := cellID(t, gs, "NimbusLoft"), cellID(t, gs, "CloudMine")
		gs.Players[0].Goods[Gold] = 3
		gs.Players[1].Goods[Gold] = 3

		require.False(t, gs.canPlace(0, loft, 2))
		require.False(t, gs.canPlace(0, mine, 2))
		require.True(t, gs.canPlace(0, cellID(t, gs, "Generator"), 2))
		require.True(t, gs.canPlace(1, loft, 2), "Bob holds a token on the market")

		require.NoError(t, gs.Apply(Pick(HandDie(2))))
		require.NotContains(t, gs.LegalDestinations(), BoardCell(mine))
		require.ErrorIs(t, gs.Apply(Drop(BoardCell(mine))), ErrIllegalDestination)
	})

	t.Run("one worker per commodity area", func(t *testing.T) {
		gs := newTestGame(t)
		openWithPenalty(t, gs, "NoSharedCommodity")
		generator, farm := cellID(t, gs, "Generator"), cellID(t, gs, "Farm")
		gs.Workers[generator] = []Worker{{Owner: 0, Pips: 5}}
		gs.Workers[farm] = []Worker{{Owner: 1, Pips: 5}}

		require.False(t, gs.canPlace(0, generator, 2))
		require.True(t, gs.canPlace(0, farm, 2), "Other players' workers do not count")
		require.True(t, gs.canPlace(1, generator, 2))
	})

	t.Run("no doubles with workers on the board", func(t *testing.T) {
		gs := newTestGame(t)
		openWithPenalty(t, gs, "NoDoubles")
		generator := cellID(t, gs, "Generator")
		gs.Workers[cellID(t, gs, "Farm")] = []Worker{{Owner: 0, Pips: 3}}

		require.False(t, gs.canPlace(0, generator, 3))
		require.True(t, gs.canPlace(0, generator, 2))
		sources := gs.LegalSources()
		require.Contains(t, sources, HandDie(2))
		require.NotContains(t, sources, HandDie(3))
		require.ErrorIs(t, gs.Apply(Pick(HandDie(3))), ErrIllegalSource)
		require.NoError(t, gs.Apply(Pick(HandDie(2))))
	})

	t.Run("closed market carries nothing", func(t *testing.T) {
		gs := newTestGame(t)
		market := openWithPenalty(t, gs, "NoIcariteWorkers")
		gs.Stars[market] = 0

		require.True(t, gs.canPlace(0, cellID(t, gs, "CloudMine"), 2))
		require.Empty(t, gs.ActivePenalties(0))
	})
}

func TestLoseMoreMorale(t *testing.T) {
	gs := newTestGame(t)
	place(t, gs, 2, "Generator")
	require.NoError(t, gs.Apply(Confirm()))
	place(t, gs, 2, "Farm")
	require.NoError(t, gs.Apply(Confirm()))
	openWithPenalty(t, gs, "LoseMoreMorale")
	generator := cellID(t, gs, "Generator")
	gs.Players[0].Morale = 4

	require.Equal(t, 2, gs.moraleLoss(0))
	require.Equal(t, 1, gs.moraleLoss(1))

	require.NoError(t, gs.Apply(Pick(BoardWorker(generator, 2))))
	require.NoError(t, gs.Apply(Drop(HandDie(0))))
	require.NoError(t, gs.Apply(Confirm()))

	require.Equal(t, EndTurnPhase, gs.Phase)
	require.Equal(t, 2, gs.Players[0].Morale, "Free retrieval should cost two morale")
}

func TestTurnCounters(t *testing.T) {
	t.Run("paying is netted against gains", func(t *testing.T) {
		gs := newTestGame(t)
		gs.Players[0].Goods[Energy] = 4
		gs.Players[0].Goods[Stone] = 1

		place(t, gs, 2, "EuphorianMarket")

		flags := gs.Players[0].Flags
		require.Equal(t, -4, flags.Gained[Energy])
		require.Equal(t, -1, flags.Gained[Stone])
		require.Equal(t, -5, flags.GainedGoods())
	})

	t.Run("training marks a new worker", func(t *testing.T) {
		gs := newTestGame(t)
		gs.Players[0].Goods[Energy] = 3

		place(t, gs, 2, "EuphorianTraining")

		flags := gs.Players[0].Flags
		require.True(t, flags.WorkerGained)
		require.Equal(t, -3, flags.Gained[Energy])
		require.Equal(t, 3, gs.Players[0].Workers)
		require.Zero(t, flags.CardsGained)
	})

	t.Run("conditions see the counters", func(t *testing.T) {
		gs := newTestGame(t)
		penalties := MustCompilePenalties(append(DefaultPenalties(), PenaltySpec{
			Name:       "NoLuckyDraws",
			Suppresses: `Player.CardsGained > 0 && Player.WorkerGained`,
		}))
		limit, lucky := penalties[len(penalties)-2], penalties[len(penalties)-1]
		require.Equal(t, "LimitOf2Commodities", limit.Name)
		plumber := gs.hook("SoullessThePlumber")
		l := NewLedger(10)

		l.Flags.Gained[Water] = 2
		require.True(t, limit.Suppresses(plumber, &l))
		l.Flags.Gained[Food] = -1
		require.False(t, limit.Suppresses(plumber, &l), "Gains are counted net")

		l.Flags.CardsGained = 1
		require.False(t, lucky.Suppresses(plumber, &l))
		l.Flags.WorkerGained = true
		require.True(t, lucky.Suppresses(plumber, &l))
	})
}

func TestPenaltyAppliesOnce(t *testing.T) {
	gs := newTestGame(t)
	openWithPenalty(t, gs, "LoseMoreMorale")
	other := cellID(t, gs, "SubterranMarket")
	gs.MarketPenalty[other] = gs.MarketPenalty[cellID(t, gs, "EuphorianMarket")]
	gs.Stars[other] = 1 << 1

	require.Equal(t, []string{"LoseMoreMorale"}, gs.ActivePenalties(0))
	require.Equal(t, 2, gs.moraleLoss(0))
}

func TestPenaltySpecs(t *testing.T) {
	specs := DefaultPenalties()
	require.Equal(t, specs, Specs(MustCompilePenalties(specs)), "Compiling should keep every field")

	_, err := CompilePenalties([]PenaltySpec{{Name: "broken", Forbids: "Place.Nope"}})
	require.ErrorContains(t, err, "placement")
	_, err = CompilePenalties([]PenaltySpec{{Name: "generous", MoraleLoss: -1}})
	require.Error(t, err)
}
