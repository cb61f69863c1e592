package scanner

import "sync/atomic"

// Counters collects pipeline totals. All fields are updated atomically by
// whichever component owns the count, so a snapshot is cheap and lock-free.
type Counters struct {
	HeightsDispatched atomic.Uint64
	BlocksScanned     atomic.Uint64
	BlocksSkipped     atomic.Uint64
	BlocksFailed      atomic.Uint64
	TxsScanned        atomic.Uint64
	EventsDetected    atomic.Uint64
	EventsPersisted   atomic.Uint64
	EntriesPersisted  atomic.Uint64
	BatchesFlushed    atomic.Uint64
	FlushFailures     atomic.Uint64
}

type Stats struct {
	HeightsDispatched uint64
	BlocksScanned     uint64
	BlocksSkipped     uint64
	BlocksFailed      uint64
	TxsScanned        uint64
	EventsDetected    uint64
	EventsPersisted   uint64
	EntriesPersisted  uint64
	BatchesFlushed    uint64
	FlushFailures     uint64
}

func (c *Counters) Snapshot() Stats {
	return Stats{
		HeightsDispatched: c.HeightsDispatched.Load(),
		BlocksScanned:     c.BlocksScanned.Load(),
		BlocksSkipped:     c.BlocksSkipped.Load(),
		BlocksFailed:      c.BlocksFailed.Load(),
		TxsScanned:        c.TxsScanned.Load(),
		EventsDetected:    c.EventsDetected.Load(),
		EventsPersisted:   c.EventsPersisted.Load(),
		EntriesPersisted:  c.EntriesPersisted.Load(),
		BatchesFlushed:    c.BatchesFlushed.Load(),
		FlushFailures:     c.FlushFailures.Load(),
	}
}

// EventGap is the number of detected events not yet confirmed persisted.
// Non-zero at shutdown means data was lost to a degraded store.
func (s Stats) EventGap() uint64 {
	if s.EventsDetected < s.EventsPersisted {
		return 0
	}
	return s.EventsDetected - s.EventsPersisted
}
