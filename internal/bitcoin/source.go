// Package bitcoin implements block access against a Bitcoin Core compatible
// node over JSON-RPC.
package bitcoin

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/chain"
	"github.com/goodnatureofminers/keyscan7000-backend/pkg/safe"
)

type Source struct {
	client Client
}

func NewSource(client Client) *Source {
	return &Source{client: client}
}

func (s *Source) LatestHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.client.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count %d: %w", count, err)
	}
	return height, nil
}

func (s *Source) FetchBlock(ctx context.Context, height uint64) (*chain.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.client.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	verbose, err := s.client.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	return &chain.Block{
		Height: height,
		Hash:   verbose.Hash,
		Time:   time.Unix(verbose.Time, 0).UTC(),
		Txs:    verbose.Tx,
	}, nil
}

func (s *Source) FetchTransactions(ctx context.Context, txids []string) (map[string]*btcjson.TxRawResult, error) {
	txs := make(map[string]*btcjson.TxRawResult, len(txids))
	for _, txid := range txids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hash, err := chainhash.NewHashFromStr(txid)
		if err != nil {
			return nil, fmt.Errorf("parse txid %q: %w", txid, err)
		}
		tx, err := s.client.GetRawTransactionVerbose(hash)
		if err != nil {
			return nil, fmt.Errorf("get transaction %s: %w", txid, err)
		}
		txs[txid] = tx
	}
	return txs, nil
}
