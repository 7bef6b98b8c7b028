package pmem_benchmark

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/boreq/errors"
)

// ArchivedRun is one benchmark invocation as kept in a run archive: when it
// ran, the workload and leaf shape it used, and every per-variant result row
// it produced.
type ArchivedRun struct {
	RecordedAt   time.Time    `json:"recorded_at"`
	Workload     WorkloadSpec `json:"workload"`
	LeafCapacity int          `json:"leaf_capacity"`
	Results      []RunResult  `json:"results"`
}

// RunStore archives runs for later comparison. Appends assign consecutive
// RunIDs starting at zero.
type RunStore interface {
	Append(run ArchivedRun) (RunID, error)
	Get(id RunID) (ArchivedRun, error)
	List() ([]ArchivedRun, error)
	Close() error
}

type RunID uint64

// Big-endian so that store keys iterate in append order.
func marshalRunID(v RunID) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func unmarshalRunID(b []byte) RunID {
	return RunID(binary.BigEndian.Uint64(b))
}

func marshalRun(run ArchivedRun, codec Codec) ([]byte, error) {
	j, err := json.Marshal(run)
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling the run")
	}

	encoded, err := codec.Encode(j)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding the run")
	}

	return encoded, nil
}

func unmarshalRun(data []byte, codec Codec) (ArchivedRun, error) {
	decoded, err := codec.Decode(data)
	if err != nil {
		return ArchivedRun{}, errors.Wrap(err, "error decoding the run")
	}

	var run ArchivedRun
	if err := json.Unmarshal(decoded, &run); err != nil {
		return ArchivedRun{}, errors.Wrap(err, "error unmarshaling the run")
	}

	return run, nil
}
