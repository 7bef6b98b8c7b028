package pmem_benchmark

import (
	"testing"
	"time"

	"github.com/boreq/pmem_benchmark/fixtures"
	"github.com/stretchr/testify/require"
)

type testedRunStore struct {
	Name        string
	Constructor func(dir string, codec Codec) (RunStore, error)
}

func testedRunStores() []testedRunStore {
	return []testedRunStore{
		{
			Name: "bolt",
			Constructor: func(dir string, codec Codec) (RunStore, error) {
				return NewBoltRunStore(dir, codec)
			},
		},
		{
			Name: "badger",
			Constructor: func(dir string, codec Codec) (RunStore, error) {
				return NewBadgerRunStore(dir, codec)
			},
		},
		{
			Name: "margaret",
			Constructor: func(dir string, codec Codec) (RunStore, error) {
				return NewMargaretRunStore(dir, codec)
			},
		},
	}
}

func TestRunStoreAppendGetList(t *testing.T) {
	for _, tested := range testedRunStores() {
		t.Run(tested.Name, func(t *testing.T) {
			for _, codec := range testCodecs() {
				t.Run(codec.Name, func(t *testing.T) {
					store, err := tested.Constructor(fixtures.Directory(t), codec.Codec)
					require.NoError(t, err)
					defer store.Close()

					first := someArchivedRun("sorted_shift")
					second := someArchivedRun("multi_word_atomic")

					firstID, err := store.Append(first)
					require.NoError(t, err)

					secondID, err := store.Append(second)
					require.NoError(t, err)

					require.Equal(t, RunID(0), firstID)
					require.Equal(t, RunID(1), secondID)

					got, err := store.Get(firstID)
					require.NoError(t, err)
					require.Equal(t, first, got)

					runs, err := store.List()
					require.NoError(t, err)
					require.Equal(t, []ArchivedRun{first, second}, runs)
				})
			}
		})
	}
}

func TestRunStoreListIsEmptyInitially(t *testing.T) {
	for _, tested := range testedRunStores() {
		t.Run(tested.Name, func(t *testing.T) {
			store, err := tested.Constructor(fixtures.Directory(t), NewNoopCodec())
			require.NoError(t, err)
			defer store.Close()

			runs, err := store.List()
			require.NoError(t, err)
			require.Empty(t, runs)
		})
	}
}

func TestRunStoreGetFailsOnMissingRun(t *testing.T) {
	for _, tested := range testedRunStores() {
		t.Run(tested.Name, func(t *testing.T) {
			store, err := tested.Constructor(fixtures.Directory(t), NewNoopCodec())
			require.NoError(t, err)
			defer store.Close()

			_, err = store.Get(RunID(0))
			require.Error(t, err)
		})
	}
}

func someArchivedRun(variant string) ArchivedRun {
	return ArchivedRun{
		RecordedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		Workload: WorkloadSpec{
			PrefillCount: 5000,
			OpCount:      100000,
			WriteRatio:   0.5,
			Seed:         123,
			KeyRange:     DefaultKeyRange,
		},
		LeafCapacity: 128,
		Results: []RunResult{
			{
				Variant:             variant,
				WriteRatio:          0.5,
				Ops:                 100000,
				ThroughputOpsPerSec: 1500.5,
				Cost:                CostSnapshot{Writes: 10, Flushes: 2, Fences: 2},
				SearchHits:          90,
				SearchSamples:       100,
			},
		},
	}
}
