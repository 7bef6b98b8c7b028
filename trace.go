package pmem_benchmark

import (
	"encoding/json"
	"os"

	"github.com/boreq/errors"
)

// Trace is a fully materialized workload: the spec it came from plus every
// prefill key and timed operation already drawn. Replaying a trace through
// the harness drives a strategy with the byte-identical sequence that was
// recorded, even across machines or code changes that would disturb the
// generator.
type Trace struct {
	WorkloadSpec WorkloadSpec `json:"workload_spec"`
	Prefill      []uint64     `json:"prefill"`
	Ops          []Operation  `json:"ops"`
}

// RecordTrace drains a workload into a trace.
func RecordTrace(w Workload) *Trace {
	t := &Trace{
		WorkloadSpec: w.Spec(),
		Prefill:      w.PrefillKeys(),
	}

	stream := w.Operations()
	for {
		op, ok := stream.Next()
		if !ok {
			break
		}
		t.Ops = append(t.Ops, op)
	}

	return t
}

func (t *Trace) Spec() WorkloadSpec {
	return t.WorkloadSpec
}

func (t *Trace) PrefillKeys() []uint64 {
	keys := make([]uint64, len(t.Prefill))
	copy(keys, t.Prefill)
	return keys
}

func (t *Trace) Operations() OperationStream {
	return &traceStream{ops: t.Ops}
}

type traceStream struct {
	ops []Operation
	i   int
}

func (s *traceStream) Next() (Operation, bool) {
	if s.i >= len(s.ops) {
		return Operation{}, false
	}
	op := s.ops[s.i]
	s.i++
	return op, true
}

// WriteTraceFile marshals the trace, runs it through the codec and writes it
// to path.
func WriteTraceFile(path string, t *Trace, codec Codec) error {
	j, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "error marshaling the trace")
	}

	encoded, err := codec.Encode(j)
	if err != nil {
		return errors.Wrap(err, "error encoding the trace")
	}

	return errors.Wrap(os.WriteFile(path, encoded, 0600), "error writing the file")
}

// ReadTraceFile reads a trace written by WriteTraceFile.
func ReadTraceFile(path string, codec Codec) (*Trace, error) {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading the file")
	}

	j, err := codec.Decode(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding the trace")
	}

	var t Trace
	if err := json.Unmarshal(j, &t); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling the trace")
	}

	return &t, nil
}
