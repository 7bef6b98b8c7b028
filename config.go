package pmem_benchmark

import (
	"os"

	"github.com/boreq/errors"
)

// The benchmark binaries carry their workload constants embedded; the
// environment only selects plumbing: which archive backend keeps the run
// history, which codec compresses archived records and traces, and whether
// the drained workload should be exported as a trace file.

const (
	envArchive  = "PMEM_BENCH_ARCHIVE"
	envCodec    = "PMEM_BENCH_CODEC"
	envTraceDir = "PMEM_BENCH_TRACE_DIR"
)

// CodecFromEnv selects the record codec. Unset means no compression.
func CodecFromEnv() (Codec, error) {
	switch os.Getenv(envCodec) {
	case "", "noop":
		return NewNoopCodec(), nil
	case "snappy":
		return NewSnappyCodec(), nil
	case "zstd":
		return NewZSTDCodec(), nil
	default:
		return nil, errors.New("unknown codec in " + envCodec)
	}
}

// OpenRunStoreFromEnv opens the run archive in dir using the backend selected
// by the environment. Unset means bbolt.
func OpenRunStoreFromEnv(dir string) (RunStore, error) {
	codec, err := CodecFromEnv()
	if err != nil {
		return nil, errors.Wrap(err, "error selecting the codec")
	}

	if err := EnsureResultsDir(dir); err != nil {
		return nil, errors.Wrap(err, "error creating the archive directory")
	}

	switch os.Getenv(envArchive) {
	case "", "bolt":
		return NewBoltRunStore(dir, codec)
	case "badger":
		return NewBadgerRunStore(dir, codec)
	case "margaret":
		return NewMargaretRunStore(dir, codec)
	default:
		return nil, errors.New("unknown archive backend in " + envArchive)
	}
}

// TraceDirFromEnv returns the directory traces should be exported to and
// whether exporting is enabled at all.
func TraceDirFromEnv() (string, bool) {
	dir := os.Getenv(envTraceDir)
	return dir, dir != ""
}
