// Package chain defines interfaces and structs shared between scanning components.
package chain

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
)

// Source provides block data and referenced transactions from a node.
type Source interface {
	LatestHeight(ctx context.Context) (uint64, error)
	FetchBlock(ctx context.Context, height uint64) (*Block, error)
	// FetchTransactions returns verbose transactions for the given txids.
	// Missing transactions map to nil entries rather than an error.
	FetchTransactions(ctx context.Context, txids []string) (map[string]*btcjson.TxRawResult, error)
}

// Block wraps one block's header fields and its verbose transactions.
type Block struct {
	Height uint64
	Hash   string
	Time   time.Time
	Txs    []btcjson.TxRawResult
}
