package pmem_benchmark

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafNodeStartsEmpty(t *testing.T) {
	leaf := NewLeafNode(4)

	require.Equal(t, 0, leaf.Count())
	require.Equal(t, 4, leaf.Capacity())
	require.False(t, leaf.Full())
	require.Empty(t, leaf.Keys())
}

func TestLeafNodeZeroCapacityIsAlwaysFull(t *testing.T) {
	leaf := NewLeafNode(0)

	require.True(t, leaf.Full())
}

func TestLeafNodeKeysReturnsACopy(t *testing.T) {
	leaf := NewLeafNode(4)
	strategy := NewUnsortedAppend(leaf, DurabilityNone)
	strategy.Insert(10, NewMeter())

	keys := leaf.Keys()
	keys[0] = 999

	require.Equal(t, []uint64{10}, leaf.Keys())
}
