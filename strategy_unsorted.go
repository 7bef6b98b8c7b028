package pmem_benchmark

// UnsortedAppend writes each key into the first free slot and never reorders,
// so an insert costs a single word write. Searches scan the whole live prefix.
type UnsortedAppend struct {
	leaf *LeafNode
	mode DurabilityMode
}

func NewUnsortedAppend(leaf *LeafNode, mode DurabilityMode) *UnsortedAppend {
	return &UnsortedAppend{
		leaf: leaf,
		mode: mode,
	}
}

func (s *UnsortedAppend) Insert(key uint64, m *Meter) {
	if s.leaf.Full() {
		return
	}

	s.leaf.keys[s.leaf.n] = key
	s.leaf.n++
	m.ChargeWrites(1)

	if s.mode == DurabilityFlushFence {
		m.ChargeFlush()
		m.ChargeFence()
	}
}

func (s *UnsortedAppend) Search(key uint64, m *Meter) bool {
	return searchLinear(s.leaf, key)
}
