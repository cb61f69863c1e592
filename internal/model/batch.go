package model

import "time"

// BlockBatch groups everything detected in one block for persistence. Workers
// produce one batch per block; batches are immutable and consumed exactly once
// by the writer.
type BlockBatch struct {
	Height    uint64
	BlockTime time.Time
	Events    []ExposureEvent
	Entries   []LedgerEntry
	Sightings []AddressSighting
}

// Empty reports whether the block produced no detections. Empty batches still
// flow to the writer so the height counts toward the checkpoint frontier.
func (b BlockBatch) Empty() bool {
	return len(b.Events) == 0 && len(b.Entries) == 0 && len(b.Sightings) == 0
}
