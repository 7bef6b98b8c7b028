package pmem_benchmark

// MultiWordAtomic bundles "write key into the next free slot" and "bump the
// count" into one two-pair descriptor applied through ApplyAtomic, so both
// words become visible together. The atomicity costs a descriptor persist and
// a second flush + fence pair per insert, strictly more than a plain append.
type MultiWordAtomic struct {
	leaf *LeafNode
}

func NewMultiWordAtomic(leaf *LeafNode) *MultiWordAtomic {
	return &MultiWordAtomic{leaf: leaf}
}

func (s *MultiWordAtomic) Insert(key uint64, m *Meter) {
	if s.leaf.Full() {
		return
	}

	l := s.leaf
	desc := UpdateDescriptor{
		Updates: []WordUpdate{
			{Loc: &l.keys[l.n], Val: key},
			{Loc: &l.n, Val: l.n + 1},
		},
	}

	ApplyAtomic(desc, m)
}

func (s *MultiWordAtomic) Search(key uint64, m *Meter) bool {
	return searchLinear(s.leaf, key)
}
