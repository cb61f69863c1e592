package model

import "time"

// Direction marks whether a ledger entry credits or debits an address.
type Direction string

var (
	// Credit marks funds received by an exposed address.
	Credit Direction = "credit"
	// Debit marks funds spent from an exposed address.
	Debit Direction = "debit"
)

// ExposedAddress is an address whose raw public key appeared in a spendable
// or spent script. Unique by address; aggregates are always recomputed from
// the ledger, never carried forward as deltas.
type ExposedAddress struct {
	Address         string
	PublicKeyHex    string
	FirstSeenHeight uint64
	FirstSeenTxID   string
	LastSeenHeight  uint64
	TotalReceived   uint64
	CurrentBalance  int64
	IsSpent         bool
	UpdatedAt       time.Time
}

// ExposureEvent is one detected input or output referencing an exposed
// address. Immutable once written. TxIndex is the output index for credits
// and the input index for debits, so a transaction paying the same key
// through several outputs yields one event per output.
type ExposureEvent struct {
	Address     string
	TxID        string
	TxIndex     uint32
	BlockHeight uint64
	BlockTime   time.Time
	Direction   Direction
	AmountSats  uint64
}

// LedgerEntry is one append-only balance-affecting record for an address.
// balance(address) == sum(credits) - sum(debits) over its entries.
type LedgerEntry struct {
	Address      string
	PublicKeyHex string
	BlockHeight  uint64
	Direction    Direction
	AmountSats   uint64
	TxID         string
	TxIndex      uint32
}

// AddressSighting records one appearance of a public key, used by the writer
// to decide which addresses need their aggregates recomputed.
type AddressSighting struct {
	Address      string
	PublicKeyHex string
	BlockHeight  uint64
	TxID         string
}
