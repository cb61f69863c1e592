package scanner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/chain"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/clock"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/detect"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
)

// batchSink accepts scanned block batches for persistence.
type batchSink interface {
	Enqueue(ctx context.Context, batch model.BlockBatch) error
}

// worker consumes heights from its inbox until the inbox closes, so a stopped
// distributor automatically drains in-flight work. Every height ends up
// either enqueued for persistence or marked failed; no height is dropped
// silently.
type worker struct {
	id          int
	source      Source
	scanner     BlockScanner
	resolver    PrevOutResolver
	progress    *progressTracker
	counters    *Counters
	metrics     Metrics
	logger      *zap.Logger
	quickScan   bool
	primeInputs bool
	maxRetries  int
	retryBase   time.Duration
	retryMax    time.Duration
}

func (w *worker) run(ctx context.Context, inbox <-chan uint64, sink batchSink) {
	for height := range inbox {
		if err := w.process(ctx, height, sink); err != nil {
			w.progress.markFailed(height)
			w.counters.BlocksFailed.Add(1)
			w.logger.Error("block failed",
				zap.Int("worker", w.id),
				zap.Uint64("height", height),
				zap.Error(err))
		}
	}
}

func (w *worker) process(ctx context.Context, height uint64, sink batchSink) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.ObserveBlock(err, started)
	}()

	block, err := w.fetchBlock(ctx, height)
	if err != nil {
		return err
	}

	batch := model.BlockBatch{Height: block.Height, BlockTime: block.Time}
	if w.quickScan && !detect.BlockMayContainExposure(block) {
		w.counters.BlocksSkipped.Add(1)
	} else {
		batch, err = w.scanBlock(ctx, block)
		if err != nil {
			return err
		}
		w.counters.BlocksScanned.Add(1)
		w.counters.TxsScanned.Add(uint64(len(block.Txs)))
		w.counters.EventsDetected.Add(uint64(len(batch.Events)))
		w.metrics.AddDetections(len(batch.Events))
	}

	// Skipped and empty blocks still flow downstream so their heights count
	// toward the checkpoint frontier once the writer flushes them.
	if err = sink.Enqueue(ctx, batch); err != nil {
		return fmt.Errorf("enqueue block %d: %w", height, err)
	}
	return nil
}

func (w *worker) fetchBlock(ctx context.Context, height uint64) (*chain.Block, error) {
	var lastErr error
	for attempt := 0; attempt < w.maxRetries; attempt++ {
		block, err := w.source.FetchBlock(ctx, height)
		if err == nil {
			return block, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		w.logger.Warn("block fetch failed",
			zap.Int("worker", w.id),
			zap.Uint64("height", height),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		if err := clock.Backoff(ctx, attempt, w.retryBase, w.retryMax); err != nil {
			break
		}
	}
	return nil, fmt.Errorf("fetch block %d: %w", height, lastErr)
}

func (w *worker) scanBlock(ctx context.Context, block *chain.Block) (model.BlockBatch, error) {
	w.resolver.Seed(block)
	var lastErr error
	for attempt := 0; attempt < w.maxRetries; attempt++ {
		if w.primeInputs {
			if err := w.resolver.Prime(ctx, spendCandidates(block)); err != nil {
				lastErr = err
				if ctx.Err() != nil || clock.Backoff(ctx, attempt, w.retryBase, w.retryMax) != nil {
					break
				}
				continue
			}
		}
		batch, err := w.scanner.Scan(ctx, block, w.resolver)
		if err == nil {
			return batch, nil
		}
		lastErr = err
		if ctx.Err() != nil || clock.Backoff(ctx, attempt, w.retryBase, w.retryMax) != nil {
			break
		}
	}
	return model.BlockBatch{}, fmt.Errorf("scan block %d: %w", block.Height, lastErr)
}

// spendCandidates lists the previous transactions of inputs that could spend
// a P2PK output, for batch prefetching.
func spendCandidates(block *chain.Block) []string {
	var txids []string
	for i := range block.Txs {
		for _, vin := range block.Txs[i].Vin {
			if vin.IsCoinBase() || vin.Txid == "" {
				continue
			}
			if detect.MightSpendExposedOutput(vin) {
				txids = append(txids, vin.Txid)
			}
		}
	}
	return txids
}
