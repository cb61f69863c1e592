package model

import "time"

// ScanCheckpoint is the durable resume marker for one named scanner run.
// LastCompletedHeight only ever grows and never outruns durable writes.
type ScanCheckpoint struct {
	ScannerName         string
	LastCompletedHeight uint64
	BlocksScanned       uint64
	UpdatedAt           time.Time
}
