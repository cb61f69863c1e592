package bitcoin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

// BatchSource fetches previous-output transactions through a JSON-RPC batch
// connection, cutting one round trip per transaction down to one per chunk.
// Block access stays on the regular client because verbose block responses
// are large enough that batching them buys nothing.
type BatchSource struct {
	*Source
	batch      *rpcclient.Client
	batchMu    sync.Mutex
	chunkSize  int
	rpcMetrics RPCMetrics
}

type RPCMetrics interface {
	Observe(operation string, err error, started time.Time)
}

func NewBatchSource(base *Source, batch *rpcclient.Client, chunkSize int, rpcMetrics RPCMetrics) *BatchSource {
	if chunkSize <= 0 {
		chunkSize = 25
	}
	return &BatchSource{
		Source:     base,
		batch:      batch,
		chunkSize:  chunkSize,
		rpcMetrics: rpcMetrics,
	}
}

func (s *BatchSource) FetchTransactions(ctx context.Context, txids []string) (map[string]*btcjson.TxRawResult, error) {
	txs := make(map[string]*btcjson.TxRawResult, len(txids))
	for start := 0; start < len(txids); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(txids) {
			end = len(txids)
		}
		if err := s.fetchChunk(ctx, txids[start:end], txs); err != nil {
			return nil, err
		}
	}
	return txs, nil
}

func (s *BatchSource) fetchChunk(ctx context.Context, txids []string, out map[string]*btcjson.TxRawResult) (err error) {
	started := time.Now()
	defer func() {
		s.rpcMetrics.Observe("get_raw_transaction_verbose_batch", err, started)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	// Send marshals and drains the client-wide pending queue, so a chunk
	// must queue its futures and send them without another caller's futures
	// interleaving. One round in flight per client.
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	futures := make([]rpcclient.FutureGetRawTransactionVerboseResult, len(txids))
	for i, txid := range txids {
		hash, hashErr := chainhash.NewHashFromStr(txid)
		if hashErr != nil {
			err = fmt.Errorf("parse txid %q: %w", txid, hashErr)
			return err
		}
		futures[i] = s.batch.GetRawTransactionVerboseAsync(hash)
	}
	if err = s.batch.Send(); err != nil {
		return fmt.Errorf("send transaction batch of %d: %w", len(txids), err)
	}
	for i, future := range futures {
		tx, recvErr := future.Receive()
		if recvErr != nil {
			err = fmt.Errorf("receive transaction %s: %w", txids[i], recvErr)
			return err
		}
		out[txids[i]] = tx
	}
	return nil
}
