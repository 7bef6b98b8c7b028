package pmem_benchmark

// SortedShift keeps the leaf ascending: every insert locates its slot and
// shifts the tail one word right, paying one write per moved word plus one
// for the new key. With DurabilityFlushFence each insert is persisted with a
// single flush + fence; with DurabilityNone it is the volatile baseline.
type SortedShift struct {
	leaf *LeafNode
	mode DurabilityMode
}

func NewSortedShift(leaf *LeafNode, mode DurabilityMode) *SortedShift {
	return &SortedShift{
		leaf: leaf,
		mode: mode,
	}
}

func (s *SortedShift) Insert(key uint64, m *Meter) {
	if s.leaf.Full() {
		return
	}

	shiftInsert(s.leaf, key, m)

	if s.mode == DurabilityFlushFence {
		m.ChargeFlush()
		m.ChargeFence()
	}
}

func (s *SortedShift) Search(key uint64, m *Meter) bool {
	return searchSorted(s.leaf, key)
}
