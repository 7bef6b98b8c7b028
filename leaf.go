package pmem_benchmark

// LeafNode is a fixed-capacity sequence of uint64 keys plus a live count. It
// models a single index leaf; whether the live prefix is kept ordered is up to
// the strategy mutating it. Keys past the live count are unspecified.
//
// An insert attempted at full capacity is dropped silently by every strategy:
// no mutation and no cost. Leaf splitting is deliberately not modeled.
type LeafNode struct {
	keys []uint64
	n    uint64
}

func NewLeafNode(capacity int) *LeafNode {
	if capacity < 0 {
		capacity = 0
	}
	return &LeafNode{
		keys: make([]uint64, capacity),
	}
}

func (l *LeafNode) Count() int {
	return int(l.n)
}

func (l *LeafNode) Capacity() int {
	return len(l.keys)
}

func (l *LeafNode) Full() bool {
	return l.n >= uint64(len(l.keys))
}

// Keys returns a copy of the live prefix.
func (l *LeafNode) Keys() []uint64 {
	keys := make([]uint64, l.n)
	copy(keys, l.keys[:l.n])
	return keys
}
