package pmem_benchmark

// logRecordWords is the fixed size of the per-insert log record
// (node id, operation type, key, position).
const logRecordWords = 4

// LogThenUpdate persists a log record before mutating the leaf in place: the
// record is flushed and fenced, then the same shift-insert as SortedShift
// runs, then the updated node is flushed and fenced again. Two durability
// checkpoints per insert make this the most expensive ordered variant.
type LogThenUpdate struct {
	leaf *LeafNode
}

func NewLogThenUpdate(leaf *LeafNode) *LogThenUpdate {
	return &LogThenUpdate{leaf: leaf}
}

func (s *LogThenUpdate) Insert(key uint64, m *Meter) {
	if s.leaf.Full() {
		return
	}

	m.ChargeWrites(logRecordWords)
	m.ChargeFlush()
	m.ChargeFence()

	shiftInsert(s.leaf, key, m)

	m.ChargeFlush()
	m.ChargeFence()
}

func (s *LogThenUpdate) Search(key uint64, m *Meter) bool {
	return searchSorted(s.leaf, key)
}
