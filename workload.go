package pmem_benchmark

import (
	"math"
	"math/rand"

	"github.com/boreq/errors"
)

const DefaultKeyRange = 1_000_000_000

// WorkloadSpec is the immutable description of one reproducible run: how many
// keys to prefill, how many timed operations to perform, which fraction of
// them are inserts, and the seed everything derives from. Identical specs
// produce bit-identical key and decision sequences, which is what makes the
// strategy comparison apples-to-apples.
type WorkloadSpec struct {
	PrefillCount int     `json:"prefill_count"`
	OpCount      int     `json:"op_count"`
	WriteRatio   float64 `json:"write_ratio"`
	Seed         int64   `json:"seed"`
	KeyRange     uint64  `json:"key_range"`
}

func (s WorkloadSpec) Validate() error {
	if s.PrefillCount < 0 {
		return errors.New("prefill count can't be negative")
	}
	if s.OpCount < 0 {
		return errors.New("op count can't be negative")
	}
	if s.WriteRatio < 0 || s.WriteRatio > 1 {
		return errors.New("write ratio must be in [0, 1]")
	}
	if s.KeyRange < 1 || s.KeyRange > math.MaxInt64 {
		return errors.New("key range out of bounds")
	}
	return nil
}

// Operation is one element of the timed phase: an insert of Key when Write is
// set, otherwise a membership search for Key.
type Operation struct {
	Key   uint64 `json:"key"`
	Write bool   `json:"write"`
}

// OperationStream yields operations lazily until the workload's operation
// count is exhausted. A stream can't be rewound; obtain a fresh one to replay.
type OperationStream interface {
	Next() (Operation, bool)
}

// Workload is what the harness consumes: either a seeded generator or a
// recorded trace being replayed.
type Workload interface {
	Spec() WorkloadSpec
	PrefillKeys() []uint64
	Operations() OperationStream
}

// WorkloadGenerator derives deterministic prefill and operation sequences
// from a spec. The prefill sequence is drawn from the spec seed and the
// operation sequence from its own derived seed, so restarting one never
// perturbs the other.
type WorkloadGenerator struct {
	spec WorkloadSpec
}

func NewWorkloadGenerator(spec WorkloadSpec) (*WorkloadGenerator, error) {
	if spec.KeyRange == 0 {
		spec.KeyRange = DefaultKeyRange
	}

	if err := spec.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid workload spec")
	}

	return &WorkloadGenerator{spec: spec}, nil
}

func (g *WorkloadGenerator) Spec() WorkloadSpec {
	return g.spec
}

// PrefillKeys re-derives the prefill sequence from the seed on every call.
func (g *WorkloadGenerator) PrefillKeys() []uint64 {
	rng := rand.New(rand.NewSource(g.spec.Seed))

	keys := make([]uint64, g.spec.PrefillCount)
	for i := range keys {
		keys[i] = drawKey(rng, g.spec.KeyRange)
	}
	return keys
}

func (g *WorkloadGenerator) Operations() OperationStream {
	return &generatedStream{
		rng:        rand.New(rand.NewSource(g.spec.Seed + 1)),
		remaining:  g.spec.OpCount,
		writeRatio: g.spec.WriteRatio,
		keyRange:   g.spec.KeyRange,
	}
}

type generatedStream struct {
	rng        *rand.Rand
	remaining  int
	writeRatio float64
	keyRange   uint64
}

func (s *generatedStream) Next() (Operation, bool) {
	if s.remaining <= 0 {
		return Operation{}, false
	}
	s.remaining--

	// The decision variable is drawn before the key; the order is fixed so
	// that replays stay bit-identical.
	write := s.rng.Float64() < s.writeRatio
	key := drawKey(s.rng, s.keyRange)

	return Operation{Key: key, Write: write}, true
}

// drawKey returns a uniform key in [1, keyRange].
func drawKey(rng *rand.Rand, keyRange uint64) uint64 {
	return uint64(rng.Int63n(int64(keyRange))) + 1
}
