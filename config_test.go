package pmem_benchmark

import (
	"testing"

	"github.com/boreq/pmem_benchmark/fixtures"
	"github.com/stretchr/testify/require"
)

func TestCodecFromEnv(t *testing.T) {
	testCases := []struct {
		Value string
		Codec Codec
	}{
		{
			Value: "",
			Codec: NewNoopCodec(),
		},
		{
			Value: "noop",
			Codec: NewNoopCodec(),
		},
		{
			Value: "snappy",
			Codec: NewSnappyCodec(),
		},
		{
			Value: "zstd",
			Codec: NewZSTDCodec(),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Value, func(t *testing.T) {
			t.Setenv("PMEM_BENCH_CODEC", testCase.Value)

			codec, err := CodecFromEnv()
			require.NoError(t, err)
			require.IsType(t, testCase.Codec, codec)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("PMEM_BENCH_CODEC", "lz77")

		_, err := CodecFromEnv()
		require.Error(t, err)
	})
}

func TestOpenRunStoreFromEnv(t *testing.T) {
	testCases := []struct {
		Value string
		Store RunStore
	}{
		{
			Value: "",
			Store: &BoltRunStore{},
		},
		{
			Value: "bolt",
			Store: &BoltRunStore{},
		},
		{
			Value: "badger",
			Store: &BadgerRunStore{},
		},
		{
			Value: "margaret",
			Store: &MargaretRunStore{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Value, func(t *testing.T) {
			t.Setenv("PMEM_BENCH_ARCHIVE", testCase.Value)

			store, err := OpenRunStoreFromEnv(fixtures.Directory(t))
			require.NoError(t, err)
			defer store.Close()

			require.IsType(t, testCase.Store, store)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("PMEM_BENCH_ARCHIVE", "postgres")

		_, err := OpenRunStoreFromEnv(fixtures.Directory(t))
		require.Error(t, err)
	})
}

func TestTraceDirFromEnv(t *testing.T) {
	t.Setenv("PMEM_BENCH_TRACE_DIR", "")

	_, ok := TraceDirFromEnv()
	require.False(t, ok)

	t.Setenv("PMEM_BENCH_TRACE_DIR", "traces")

	dir, ok := TraceDirFromEnv()
	require.True(t, ok)
	require.Equal(t, "traces", dir)
}
