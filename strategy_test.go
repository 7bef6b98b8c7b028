package pmem_benchmark

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedShiftKeepsOrderAndCountsShifts(t *testing.T) {
	leaf := NewLeafNode(4)
	strategy := NewSortedShift(leaf, DurabilityFlushFence)
	m := NewMeter()

	// 5 shifts nothing, 3 shifts one, 8 shifts nothing, 1 shifts three.
	for _, key := range []uint64{5, 3, 8, 1} {
		strategy.Insert(key, m)
	}

	require.Equal(t, []uint64{1, 3, 5, 8}, leaf.Keys())
	require.True(t, strategy.Search(3, m))
	require.False(t, strategy.Search(9, m))

	require.EqualValues(t, 7, m.Writes())
	require.EqualValues(t, 4, m.Flushes())
	require.EqualValues(t, 4, m.Fences())
}

func TestSortedShiftVolatileChargesNoDurability(t *testing.T) {
	leaf := NewLeafNode(4)
	strategy := NewSortedShift(leaf, DurabilityNone)
	m := NewMeter()

	for _, key := range []uint64{5, 3, 8, 1} {
		strategy.Insert(key, m)
	}

	require.Equal(t, []uint64{1, 3, 5, 8}, leaf.Keys())
	require.EqualValues(t, 7, m.Writes())
	require.EqualValues(t, 0, m.Flushes())
	require.EqualValues(t, 0, m.Fences())
}

func TestUnsortedAppendOverflowIsAFreeNoOp(t *testing.T) {
	leaf := NewLeafNode(2)
	strategy := NewUnsortedAppend(leaf, DurabilityFlushFence)
	m := NewMeter()

	strategy.Insert(10, m)
	strategy.Insert(20, m)

	before := m.Snapshot()
	strategy.Insert(30, m)

	require.Equal(t, 2, leaf.Count())
	require.Equal(t, before, m.Snapshot())
	require.False(t, strategy.Search(30, m))
}

func TestSingleInsertCosts(t *testing.T) {
	testCases := []struct {
		Name    string
		Writes  uint64
		Flushes uint64
		Fences  uint64
	}{
		{
			Name:    "sorted_shift",
			Writes:  1,
			Flushes: 1,
			Fences:  1,
		},
		{
			Name:    "sorted_shift_volatile",
			Writes:  1,
			Flushes: 0,
			Fences:  0,
		},
		{
			Name:    "unsorted_append",
			Writes:  1,
			Flushes: 1,
			Fences:  1,
		},
		{
			Name:    "log_then_update",
			Writes:  logRecordWords + 1,
			Flushes: 2,
			Fences:  2,
		},
		{
			Name:    "slot_indirection",
			Writes:  1 + slotMetadataWords,
			Flushes: 1,
			Fences:  1,
		},
		{
			Name:    "multi_word_atomic",
			Writes:  descriptorPersistWords + 2,
			Flushes: 2,
			Fences:  2,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			variant, ok := FindVariant(testCase.Name)
			require.True(t, ok)

			leaf := NewLeafNode(8)
			strategy := variant.New(leaf)
			m := NewMeter()

			strategy.Insert(42, m)

			require.Equal(t, 1, leaf.Count())
			require.Equal(t, testCase.Writes, m.Writes())
			require.Equal(t, testCase.Flushes, m.Flushes())
			require.Equal(t, testCase.Fences, m.Fences())
		})
	}
}

func TestAllVariantsCountInsertsAndIgnoreOverflow(t *testing.T) {
	const capacity = 8

	for _, variant := range DefaultVariants() {
		t.Run(variant.Name, func(t *testing.T) {
			leaf := NewLeafNode(capacity)
			strategy := variant.New(leaf)
			m := NewMeter()

			for i := 0; i < capacity; i++ {
				strategy.Insert(uint64(i+1), m)
				require.Equal(t, i+1, leaf.Count())
			}

			require.True(t, leaf.Full())

			before := m.Snapshot()
			strategy.Insert(999, m)

			require.Equal(t, capacity, leaf.Count())
			require.Equal(t, before, m.Snapshot())
		})
	}
}

func TestOrderedVariantsKeepKeysNonDecreasing(t *testing.T) {
	keys := []uint64{17, 3, 99, 3, 54, 21, 8, 76}

	for _, name := range []string{"sorted_shift", "sorted_shift_volatile", "log_then_update"} {
		t.Run(name, func(t *testing.T) {
			variant, ok := FindVariant(name)
			require.True(t, ok)

			leaf := NewLeafNode(len(keys))
			strategy := variant.New(leaf)
			m := NewMeter()

			for _, key := range keys {
				strategy.Insert(key, m)
			}

			got := leaf.Keys()
			require.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
				return got[i] < got[j]
			}))
		})
	}
}

func TestAllVariantsAnswerMembership(t *testing.T) {
	inserted := []uint64{17, 3, 99, 54}
	absent := []uint64{1, 100, 55}

	for _, variant := range DefaultVariants() {
		t.Run(variant.Name, func(t *testing.T) {
			leaf := NewLeafNode(len(inserted))
			strategy := variant.New(leaf)
			m := NewMeter()

			for _, key := range inserted {
				strategy.Insert(key, m)
			}

			for _, key := range inserted {
				require.True(t, strategy.Search(key, m), "expected to find %d", key)
			}
			for _, key := range absent {
				require.False(t, strategy.Search(key, m), "didn't expect to find %d", key)
			}
		})
	}
}

func TestSearchesAreWearFree(t *testing.T) {
	for _, variant := range DefaultVariants() {
		t.Run(variant.Name, func(t *testing.T) {
			leaf := NewLeafNode(4)
			strategy := variant.New(leaf)
			strategy.Insert(10, NewMeter())

			m := NewMeter()
			strategy.Search(10, m)
			strategy.Search(11, m)

			require.Equal(t, CostSnapshot{}, m.Snapshot())
		})
	}
}

func TestCostsAreAdditiveAcrossInserts(t *testing.T) {
	for _, variant := range DefaultVariants() {
		t.Run(variant.Name, func(t *testing.T) {
			first := NewMeter()
			firstLeaf := NewLeafNode(4)
			firstStrategy := variant.New(firstLeaf)
			firstStrategy.Insert(10, first)

			second := NewMeter()
			secondLeaf := NewLeafNode(4)
			secondStrategy := variant.New(secondLeaf)
			secondStrategy.Insert(10, second)
			afterFirst := second.Snapshot()
			secondStrategy.Insert(20, second)

			delta := second.Snapshot().Sub(afterFirst)

			combined := CostSnapshot{
				Writes:  first.Writes() + delta.Writes,
				Flushes: first.Flushes() + delta.Flushes,
				Fences:  first.Fences() + delta.Fences,
			}

			require.Equal(t, second.Snapshot(), combined)
		})
	}
}

func TestDuplicateKeysAreAllowed(t *testing.T) {
	for _, variant := range DefaultVariants() {
		t.Run(variant.Name, func(t *testing.T) {
			leaf := NewLeafNode(4)
			strategy := variant.New(leaf)
			m := NewMeter()

			strategy.Insert(7, m)
			strategy.Insert(7, m)

			require.Equal(t, 2, leaf.Count())
			require.True(t, strategy.Search(7, m))
		})
	}
}

func TestFindVariant(t *testing.T) {
	variant, ok := FindVariant("multi_word_atomic")
	require.True(t, ok)
	require.Equal(t, "multi_word_atomic", variant.Name)

	_, ok = FindVariant("no_such_variant")
	require.False(t, ok)
}
