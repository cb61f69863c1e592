package bitcoin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/chain"
	"github.com/goodnatureofminers/keyscan7000-backend/pkg/safe"
)

// PrevOutResolver resolves the output an input spends. Each worker owns one,
// so the cache needs no locking. Transactions of the block being scanned are
// seeded up front because inputs frequently spend outputs created a few
// transactions earlier in the same block.
type PrevOutResolver struct {
	source     chain.Source
	cache      map[string]*btcjson.TxRawResult
	maxEntries int
}

func NewPrevOutResolver(source chain.Source, maxEntries int) *PrevOutResolver {
	if maxEntries <= 0 {
		maxEntries = 50_000
	}
	return &PrevOutResolver{
		source:     source,
		cache:      make(map[string]*btcjson.TxRawResult),
		maxEntries: maxEntries,
	}
}

// Seed loads all transactions of a block into the cache, wiping the cache
// first when it has grown past its bound.
func (r *PrevOutResolver) Seed(block *chain.Block) {
	if len(r.cache) > r.maxEntries {
		r.cache = make(map[string]*btcjson.TxRawResult)
	}
	for i := range block.Txs {
		r.cache[block.Txs[i].Txid] = &block.Txs[i]
	}
}

// Prime fetches the given transactions into the cache, skipping ones already
// present. With a batching source this turns per-input lookups into a handful
// of round trips per block.
func (r *PrevOutResolver) Prime(ctx context.Context, txids []string) error {
	missing := make([]string, 0, len(txids))
	seen := make(map[string]struct{}, len(txids))
	for _, txid := range txids {
		if _, ok := r.cache[txid]; ok {
			continue
		}
		if _, ok := seen[txid]; ok {
			continue
		}
		seen[txid] = struct{}{}
		missing = append(missing, txid)
	}
	if len(missing) == 0 {
		return nil
	}
	txs, err := r.source.FetchTransactions(ctx, missing)
	if err != nil {
		return fmt.Errorf("prime %d transactions: %w", len(missing), err)
	}
	for txid, tx := range txs {
		if tx == nil {
			continue
		}
		r.cache[txid] = tx
	}
	return nil
}

// PrevOutput returns the vout-th output of the given transaction, fetching
// the transaction when it is not cached.
func (r *PrevOutResolver) PrevOutput(ctx context.Context, txid string, vout uint32) (*btcjson.Vout, error) {
	tx, ok := r.cache[txid]
	if !ok {
		txs, err := r.source.FetchTransactions(ctx, []string{txid})
		if err != nil {
			return nil, fmt.Errorf("resolve previous output %s:%d: %w", txid, vout, err)
		}
		tx = txs[txid]
		if tx == nil {
			return nil, fmt.Errorf("transaction %s not returned by node", txid)
		}
		r.cache[txid] = tx
	}
	index, err := safe.Uint64(vout)
	if err != nil {
		return nil, fmt.Errorf("output index %d of %s: %w", vout, txid, err)
	}
	if index >= uint64(len(tx.Vout)) {
		return nil, fmt.Errorf("transaction %s has no output %d", txid, vout)
	}
	return &tx.Vout[index], nil
}
