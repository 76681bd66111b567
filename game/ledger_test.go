package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
- goods: removal is all or nothing
- tracks: clamped to [1,6], report the change actually applied
- cards: pairs with and without wildcards, matching by identity or wildcard
- payment: atomic, never partially applied
- copy: independent of the original
*/

func TestLedgerGoods(t *testing.T) {
	t.Run("removing more than held fails without change", func(t *testing.T) {
		l := NewLedger(10)
		l.Add(Water, 2)

		err := l.Remove(Water, 3)

		require.ErrorIs(t, err, ErrInsufficientResource)
		require.Equal(t, 2, l.Count(Water), "Failed removal should not take anything")
	})

	t.Run("counting distinct kinds", func(t *testing.T) {
		l := NewLedger(10)
		l.Add(Water, 2)
		l.Add(Food, 1)
		l.Add(Gold, 1)

		require.Equal(t, 2, l.CountDistinctKinds(Commodities))
		require.Equal(t, 3, l.CountIn(Kinds(Water, Food)))
	})
}

func TestLedgerTracks(t *testing.T) {
	l := NewLedger(10)

	require.Equal(t, 3, l.RaiseKnowledge(5), "Knowledge should stop at the top of the track")
	require.Equal(t, MaxTrack, l.Knowledge)
	require.Equal(t, 0, l.LowerMorale(3), "Morale should not drop below the bottom of the track")
	require.Equal(t, MinTrack, l.Morale)
	require.Equal(t, 2, l.RaiseMorale(2))
	require.Equal(t, 5, l.LowerKnowledge(9))
}

func TestLedgerCards(t *testing.T) {
	t.Run("pairs", func(t *testing.T) {
		l := NewLedger(10)
		l.AddCard(Book)
		l.AddCard(Bat)
		book := ArtifactSet(0).Add(Book)

		require.False(t, l.HasPair(0), "Two different cards are not a pair")
		require.True(t, l.HasPair(book), "A wild book pairs with anything")

		l.RemoveCard(Bat)
		require.False(t, l.HasPair(book), "A single wild card is not a pair")
	})

	t.Run("matching by identity", func(t *testing.T) {
		l := NewLedger(10)
		l.AddCard(Bat)
		l.AddCard(Bat)
		l.AddCard(Bear)

		index, err := l.MatchingIndex(Bat, 0)
		require.NoError(t, err)
		require.Equal(t, 0, index)

		_, err = l.MatchingIndex(Box, 0)
		require.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("matching with wildcards", func(t *testing.T) {
		l := NewLedger(10)
		l.AddCard(Book)
		l.AddCard(Bat)
		l.AddCard(Bear)
		book := ArtifactSet(0).Add(Book)

		index, err := l.MatchingIndex(Box, book)
		require.NoError(t, err, "Only the wild book matches a box")
		require.Equal(t, 0, index)

		_, err = l.MatchingIndex(Book, book)
		require.ErrorIs(t, err, ErrAmbiguous, "A wild book matches every held card")
	})
}

func TestLedgerPay(t *testing.T) {
	t.Run("paying is atomic", func(t *testing.T) {
		l := NewLedger(10)
		l.Add(Water, 1)
		var p Payment
		p.Goods[Water] = 1
		p.Cards[Bat] = 1

		require.ErrorIs(t, l.Pay(p), ErrInsufficientResource)
		require.Equal(t, 1, l.Count(Water), "Nothing should be taken when part of the payment is missing")
	})

	t.Run("paying moves the tracks", func(t *testing.T) {
		l := NewLedger(10)
		l.RaiseMorale(2)

		require.NoError(t, l.Pay(Payment{Knowledge: 2, Morale: 1}))
		require.Equal(t, 5, l.Knowledge)
		require.Equal(t, 2, l.Morale)
	})

	t.Run("paying past the end of a track fails", func(t *testing.T) {
		l := NewLedger(10)

		require.ErrorIs(t, l.Pay(Payment{Knowledge: 4}), ErrInsufficientResource)
		require.ErrorIs(t, l.Pay(Payment{Morale: 1}), ErrInsufficientResource)
		require.Equal(t, 3, l.Knowledge)
	})
}

func TestLedgerWorkersAndCopy(t *testing.T) {
	l := NewLedger(10)
	l.AddWorker(5)
	l.AddWorker(2)
	l.Flags.Used["x"] = true

	c := l.Copy()
	require.True(t, c.TakeWorker(5))
	c.Flags.Used["y"] = true
	c.AddCard(Bat)

	require.Equal(t, []int{2, 5}, l.Hand, "Hand should stay sorted and unaffected by the copy")
	require.Equal(t, []int{2}, c.Hand)
	require.False(t, l.Flags.Used["y"], "Turn flags should not be shared with the copy")
	require.Empty(t, l.Cards)
	require.False(t, c.TakeWorker(6))

	l.StartTurn()
	require.Empty(t, l.Flags.Used)
}
