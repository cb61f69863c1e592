package scanner

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/clock"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
	"github.com/goodnatureofminers/keyscan7000-backend/pkg/batcher"
)

// writer owns all persistence. Block batches queue behind a write-behind
// batcher; each flush commits detections first and only then advances the
// checkpoint, so a crash can replay blocks but never skip them.
type writer struct {
	repo        Repository
	progress    *progressTracker
	counters    *Counters
	metrics     Metrics
	logger      *zap.Logger
	scannerName string
	maxRetries  int
	retryBase   time.Duration
	retryMax    time.Duration

	batcher  *batcher.Batcher[model.BlockBatch]
	degraded atomic.Bool

	// Heights whose batch was abandoned after exhausting retries. Only the
	// flush goroutine appends; readers wait for Stop first.
	abandoned []uint64

	// Flushes run on the batcher's single goroutine, so checkpoint state
	// needs no locking.
	checkpointSaved  bool
	checkpointHeight uint64
}

type writerConfig struct {
	scannerName   string
	queueSize     int
	batchSize     int
	flushInterval time.Duration
	flushRPS      int
	maxRetries    int
	retryBase     time.Duration
	retryMax      time.Duration
}

func newWriter(
	repo Repository,
	progress *progressTracker,
	counters *Counters,
	metrics Metrics,
	logger *zap.Logger,
	cfg writerConfig,
) *writer {
	w := &writer{
		repo:        repo,
		progress:    progress,
		counters:    counters,
		metrics:     metrics,
		logger:      logger,
		scannerName: cfg.scannerName,
		maxRetries:  cfg.maxRetries,
		retryBase:   cfg.retryBase,
		retryMax:    cfg.retryMax,
	}
	w.batcher = batcher.New(logger, w.flush, cfg.queueSize, cfg.batchSize, cfg.flushInterval, cfg.flushRPS)
	return w
}

func (w *writer) Start(ctx context.Context) { w.batcher.Start(ctx) }

// Stop flushes everything still queued before returning.
func (w *writer) Stop() { w.batcher.Stop() }

func (w *writer) Enqueue(ctx context.Context, batch model.BlockBatch) error {
	return w.batcher.Add(ctx, batch)
}

func (w *writer) Depth() int { return w.batcher.Depth() }

// Degraded reports whether any batch was abandoned after exhausting retries.
// Abandoned heights never enter the frontier, so the checkpoint stalls below
// them and a rerun scans them again.
func (w *writer) Degraded() bool { return w.degraded.Load() }

// AbandonedHeights lists heights whose data was never committed. Valid only
// after Stop has returned.
func (w *writer) AbandonedHeights() []uint64 {
	heights := make([]uint64, len(w.abandoned))
	copy(heights, w.abandoned)
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })
	return heights
}

func (w *writer) flush(ctx context.Context, batches []model.BlockBatch) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.ObserveFlush(err, len(batches), started)
	}()

	var (
		events  []model.ExposureEvent
		entries []model.LedgerEntry
		heights []uint64
	)
	addressSet := make(map[string]struct{})
	for _, batch := range batches {
		events = append(events, batch.Events...)
		entries = append(entries, batch.Entries...)
		heights = append(heights, batch.Height)
		for _, sighting := range batch.Sightings {
			addressSet[sighting.Address] = struct{}{}
		}
	}
	addresses := make([]string, 0, len(addressSet))
	for address := range addressSet {
		addresses = append(addresses, address)
	}

	for attempt := 0; ; attempt++ {
		err = w.commit(ctx, events, entries, addresses)
		if err == nil {
			break
		}
		w.counters.FlushFailures.Add(1)
		if attempt+1 >= w.maxRetries {
			// Do not touch the progress tracker. Leaving the gap open pins
			// the checkpoint below the abandoned heights.
			w.degraded.Store(true)
			w.abandoned = append(w.abandoned, heights...)
			w.logger.Error("abandoning batch after repeated flush failures",
				zap.Int("blocks", len(batches)),
				zap.Uint64s("heights", heights),
				zap.Error(err))
			return err
		}
		w.logger.Warn("flush failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		if sleepErr := clock.Backoff(ctx, attempt, w.retryBase, w.retryMax); sleepErr != nil {
			// Keep retrying during shutdown; the queued data has nowhere
			// else to go.
			continue
		}
	}

	for _, height := range heights {
		w.progress.markDone(height)
	}
	w.counters.BatchesFlushed.Add(1)
	w.counters.EventsPersisted.Add(uint64(len(events)))
	w.counters.EntriesPersisted.Add(uint64(len(entries)))

	w.advanceCheckpoint(ctx)
	return nil
}

func (w *writer) commit(ctx context.Context, events []model.ExposureEvent, entries []model.LedgerEntry, addresses []string) error {
	if len(events) > 0 {
		if err := w.repo.InsertExposureEvents(ctx, events); err != nil {
			return fmt.Errorf("insert exposure events: %w", err)
		}
	}
	if len(entries) > 0 {
		if err := w.repo.InsertLedgerEntries(ctx, entries); err != nil {
			return fmt.Errorf("insert ledger entries: %w", err)
		}
	}
	if len(addresses) > 0 {
		if err := w.repo.RefreshAddressAggregates(ctx, addresses); err != nil {
			return fmt.Errorf("refresh address aggregates: %w", err)
		}
	}
	return nil
}

func (w *writer) advanceCheckpoint(ctx context.Context) {
	frontier, ok := w.progress.frontier()
	if !ok || (w.checkpointSaved && frontier <= w.checkpointHeight) {
		return
	}
	err := w.repo.SaveCheckpoint(ctx, model.ScanCheckpoint{
		ScannerName:         w.scannerName,
		LastCompletedHeight: frontier,
		BlocksScanned:       w.progress.completedCount(),
	})
	if err != nil {
		// The frontier is monotone; the next flush saves a height at least
		// this high.
		w.logger.Warn("checkpoint save failed", zap.Uint64("height", frontier), zap.Error(err))
		return
	}
	w.checkpointSaved = true
	w.checkpointHeight = frontier
	w.metrics.SetCheckpointHeight(frontier)
}
