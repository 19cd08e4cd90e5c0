package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shopAlloc/internal/bench"
)

func TestParsePairs(t *testing.T) {
	got, err := parsePairs(" 10x5, 20x8 ,,")
	require.NoError(t, err)
	require.Equal(t, []bench.Case{{Goods: 10, Requirements: 5}, {Goods: 20, Requirements: 8}}, got)

	for _, bad := range []string{"10", "10x", "ax5", "0x5", "10x5x2"} {
		_, err := parsePairs(bad)
		require.Error(t, err, bad)
	}
}
