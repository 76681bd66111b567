package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

/**
UCT scoring of children
- parents and children without visits are refused
- the score is q/n + sqrt(c² ln N / n)
- exploration grows with parent visits and shrinks with child visits
*/

func TestNewExplorer(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newExplorer(2.0, 0)
		}, "Should panic when N is 0")
	})
}

func TestExplorerScore(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		e := newExplorer(2.0, 100)
		got := e.score(5.0, 10)

		expected := 5.0/10 + math.Sqrt(2.0*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		e := newExplorer(2.0, 100)

		require.Panics(t, func() {
			e.score(5.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		score1 := newExplorer(2.0, 100).score(5.0, 10)
		score2 := newExplorer(2.0, 1000).score(5.0, 10)

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		e := newExplorer(2.0, 100)

		require.Greater(t, e.score(5.0, 10), e.score(5.0, 20),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		e := newExplorer(2.0, 100)

		require.Greater(t, e.score(10.0, 10), e.score(5.0, 10),
			"More rewards should increase exploitation term")
	})
}
