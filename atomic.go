package pmem_benchmark

// descriptorPersistWords is the simulated size of the descriptor pre-image
// that has to be durable before any target word changes. Like the other
// per-variant charge constants it is a modeling choice, not a derived value.
const descriptorPersistWords = 2

// WordUpdate is one (location, new value) pair of a multi-word atomic update.
type WordUpdate struct {
	Loc *uint64
	Val uint64
}

// UpdateDescriptor describes one logically atomic update of several
// independent words. It is built per operation, applied once and discarded.
// Locations are expected to be disjoint; the list must not be empty.
type UpdateDescriptor struct {
	Updates []WordUpdate
}

// ApplyAtomic applies every pair of the descriptor as one logically atomic,
// durably ordered operation and charges the meter for the full protocol:
// persist the descriptor (flush + fence), write each target word in list
// order, persist the final state (flush + fence).
//
// The atomicity modeled here is a durability-ordering property only; exactly
// one thread of control ever runs this, and in this simulation the protocol
// cannot fail.
func ApplyAtomic(desc UpdateDescriptor, m *Meter) bool {
	m.ChargeWrites(descriptorPersistWords)
	m.ChargeFlush()
	m.ChargeFence()

	for _, u := range desc.Updates {
		*u.Loc = u.Val
		m.ChargeWrites(1)
	}

	m.ChargeFlush()
	m.ChargeFence()

	return true
}
