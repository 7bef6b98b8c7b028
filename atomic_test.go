package pmem_benchmark

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyAtomicWritesEveryTarget(t *testing.T) {
	var a, b, c uint64
	m := NewMeter()

	ok := ApplyAtomic(UpdateDescriptor{
		Updates: []WordUpdate{
			{Loc: &a, Val: 1},
			{Loc: &b, Val: 2},
			{Loc: &c, Val: 3},
		},
	}, m)

	require.True(t, ok)
	require.EqualValues(t, 1, a)
	require.EqualValues(t, 2, b)
	require.EqualValues(t, 3, c)
}

func TestApplyAtomicCostDependsOnlyOnPairCount(t *testing.T) {
	for _, pairs := range []int{1, 2, 5, 16} {
		t.Run(fmt.Sprintf("pairs_%d", pairs), func(t *testing.T) {
			targets := make([]uint64, pairs)

			var desc UpdateDescriptor
			for i := range targets {
				desc.Updates = append(desc.Updates, WordUpdate{
					Loc: &targets[i],
					Val: uint64(i + 1),
				})
			}

			m := NewMeter()
			require.True(t, ApplyAtomic(desc, m))

			require.EqualValues(t, descriptorPersistWords+pairs, m.Writes())
			require.EqualValues(t, 2, m.Flushes())
			require.EqualValues(t, 2, m.Fences())
		})
	}
}

func TestApplyAtomicLastWriteWinsOnAliasedLocations(t *testing.T) {
	// Locations are normally disjoint; applying in list order is what makes
	// the outcome deterministic when they aren't.
	var a uint64
	m := NewMeter()

	ApplyAtomic(UpdateDescriptor{
		Updates: []WordUpdate{
			{Loc: &a, Val: 1},
			{Loc: &a, Val: 2},
		},
	}, m)

	require.EqualValues(t, 2, a)
}

func TestMultiWordAtomicInsertCostIsIndependentOfFillLevel(t *testing.T) {
	leaf := NewLeafNode(8)
	strategy := NewMultiWordAtomic(leaf)
	m := NewMeter()

	var previous CostSnapshot
	for i := 0; i < 8; i++ {
		strategy.Insert(uint64(i+1), m)
		delta := m.Snapshot().Sub(previous)

		require.EqualValues(t, descriptorPersistWords+2, delta.Writes)
		require.EqualValues(t, 2, delta.Flushes)
		require.EqualValues(t, 2, delta.Fences)

		previous = m.Snapshot()
	}
}
