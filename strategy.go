package pmem_benchmark

import "sort"

// LeafStrategy is one leaf-update policy. Inserts mutate the leaf and charge
// the meter according to the variant's cost model; searches are wear-free in
// every variant and charge nothing, which is the asymmetry the simulation
// exists to expose.
type LeafStrategy interface {
	Insert(key uint64, m *Meter)
	Search(key uint64, m *Meter) bool
}

// DurabilityMode selects whether a variant persists each insert with a
// flush + fence pair or models a volatile baseline.
type DurabilityMode int

const (
	DurabilityNone DurabilityMode = iota
	DurabilityFlushFence
)

// Variant couples a CSV-stable name with a strategy constructor so harnesses
// and benchmarks can iterate the whole family over the same leaf shape.
type Variant struct {
	Name string
	New  func(leaf *LeafNode) LeafStrategy
}

// DefaultVariants returns the full family under comparison.
func DefaultVariants() []Variant {
	return []Variant{
		{
			Name: "sorted_shift",
			New: func(leaf *LeafNode) LeafStrategy {
				return NewSortedShift(leaf, DurabilityFlushFence)
			},
		},
		{
			Name: "sorted_shift_volatile",
			New: func(leaf *LeafNode) LeafStrategy {
				return NewSortedShift(leaf, DurabilityNone)
			},
		},
		{
			Name: "unsorted_append",
			New: func(leaf *LeafNode) LeafStrategy {
				return NewUnsortedAppend(leaf, DurabilityFlushFence)
			},
		},
		{
			Name: "log_then_update",
			New: func(leaf *LeafNode) LeafStrategy {
				return NewLogThenUpdate(leaf)
			},
		},
		{
			Name: "slot_indirection",
			New: func(leaf *LeafNode) LeafStrategy {
				return NewSlotIndirection(leaf)
			},
		},
		{
			Name: "multi_word_atomic",
			New: func(leaf *LeafNode) LeafStrategy {
				return NewMultiWordAtomic(leaf)
			},
		},
	}
}

// FindVariant returns the named entry of DefaultVariants.
func FindVariant(name string) (Variant, bool) {
	for _, v := range DefaultVariants() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// shiftInsert places key into the ascending live prefix, moving every trailing
// word one slot right. It charges one write per shifted word plus one write
// for the key itself; the caller decides what durability to charge on top.
// The leaf must not be full.
func shiftInsert(l *LeafNode, key uint64, m *Meter) {
	pos := sort.Search(int(l.n), func(i int) bool {
		return l.keys[i] >= key
	})

	for i := int(l.n); i > pos; i-- {
		l.keys[i] = l.keys[i-1]
		m.ChargeWrites(1)
	}

	l.keys[pos] = key
	l.n++
	m.ChargeWrites(1)
}

func searchSorted(l *LeafNode, key uint64) bool {
	i := sort.Search(int(l.n), func(i int) bool {
		return l.keys[i] >= key
	})
	return i < int(l.n) && l.keys[i] == key
}

func searchLinear(l *LeafNode, key uint64) bool {
	for _, k := range l.keys[:l.n] {
		if k == key {
			return true
		}
	}
	return false
}
