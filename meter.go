package pmem_benchmark

// Meter accumulates the simulated persistence costs of a single run: word
// writes, cache-line flushes and durability fences. Each run owns exactly one
// meter; there is no global state and no reset, a fresh run takes a fresh
// meter.
type Meter struct {
	writes  uint64
	flushes uint64
	fences  uint64
}

func NewMeter() *Meter {
	return &Meter{}
}

// ChargeWrites records n word writes.
func (m *Meter) ChargeWrites(n uint64) {
	m.writes += n
}

// ChargeFlush records one cache-line flush.
func (m *Meter) ChargeFlush() {
	m.flushes++
}

// ChargeFence records one durability fence.
func (m *Meter) ChargeFence() {
	m.fences++
}

func (m *Meter) Writes() uint64 {
	return m.writes
}

func (m *Meter) Flushes() uint64 {
	return m.flushes
}

func (m *Meter) Fences() uint64 {
	return m.fences
}

// CostSnapshot is a point-in-time copy of a meter's counters.
type CostSnapshot struct {
	Writes  uint64 `json:"writes"`
	Flushes uint64 `json:"flushes"`
	Fences  uint64 `json:"fences"`
}

func (m *Meter) Snapshot() CostSnapshot {
	return CostSnapshot{
		Writes:  m.writes,
		Flushes: m.flushes,
		Fences:  m.fences,
	}
}

// Sub returns the charges accumulated since an earlier snapshot of the same
// meter.
func (s CostSnapshot) Sub(earlier CostSnapshot) CostSnapshot {
	return CostSnapshot{
		Writes:  s.Writes - earlier.Writes,
		Flushes: s.Flushes - earlier.Flushes,
		Fences:  s.Fences - earlier.Fences,
	}
}
