package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithout(t *testing.T) {
	shared := []int{1, 2, 3, 4}
	out := Without(shared, 1)
	require.Equal(t, []int{1, 3, 4}, out)
	out[0] = 9
	require.Equal(t, []int{1, 2, 3, 4}, shared, "Original should be untouched")
	require.Empty(t, Without([]int{5}, 0))
}

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b"}, "b"))
	require.Equal(t, -1, FindIndex([]string{"a", "b"}, "c"))
}
