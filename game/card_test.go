package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
- an empty deck takes back the discard pile, shuffled, before drawing
- the shuffle comes from the game generator, so a copy draws the same cards
- with no card in deck or discard pile nothing is drawn
*/

func TestDrawCard(t *testing.T) {
	// empty deck with a discard pile of six different cards
	exhausted := func(t *testing.T) *GameState {
		gs := newTestGame(t)
		gs.Deck = nil
		gs.Discard = []Artifact{Book, Balloons, Bifocals, Box, Bear, Bat}
		return gs
	}

	t.Run("discard pile is reshuffled", func(t *testing.T) {
		gs := exhausted(t)

		card, ok := gs.DrawCard()

		require.True(t, ok)
		require.Empty(t, gs.Discard)
		require.Len(t, gs.Deck, 5)
		require.ElementsMatch(t, []Artifact{Book, Balloons, Bifocals, Box, Bear, Bat}, append(gs.Deck, card))
	})

	t.Run("copies reshuffle alike", func(t *testing.T) {
		gs := exhausted(t)
		c := gs.Copy()

		var drawn, copied []Artifact
		for range 6 {
			card, ok := gs.DrawCard()
			require.True(t, ok)
			drawn = append(drawn, card)
			card, ok = c.DrawCard()
			require.True(t, ok)
			copied = append(copied, card)
		}

		require.Equal(t, drawn, copied)
		require.Equal(t, gs.Digest(), c.Digest())
	})

	t.Run("nothing left anywhere", func(t *testing.T) {
		gs := exhausted(t)
		gs.Discard = nil

		_, ok := gs.DrawCard()

		require.False(t, ok)
	})

	t.Run("tunnel draws from the discard pile", func(t *testing.T) {
		gs := exhausted(t)
		gs.Players[0].Goods[Energy] = 1

		place(t, gs, 2, "EuphorianTunnel")

		require.Equal(t, 1, gs.Players[0].CardCount())
		require.Len(t, gs.Deck, 5)
		require.Empty(t, gs.Discard)
	})
}
