package scanner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/clock"
)

// distributor is the sole producer for the worker inboxes. It hands out
// heights round-robin with blocking sends, so small inbox capacities keep
// workers close together and bound how far ahead of the writer the pipeline
// can run. Closing the inboxes on return is what lets workers drain and exit.
type distributor struct {
	source         Source
	inboxes        []chan uint64
	gate           *pauseGate
	counters       *Counters
	logger         *zap.Logger
	startHeight    uint64
	endHeight      uint64 // 0 follows the chain tip
	followInterval time.Duration
	maxRetries     int
	retryBase      time.Duration
	retryMax       time.Duration
}

func (d *distributor) run(ctx context.Context) error {
	defer func() {
		for _, inbox := range d.inboxes {
			close(inbox)
		}
	}()

	var tip uint64
	next := d.startHeight
	worker := 0

	for {
		if err := d.gate.Wait(ctx); err != nil {
			return nil
		}

		if d.endHeight > 0 && next > d.endHeight {
			d.logger.Info("reached end height", zap.Uint64("end_height", d.endHeight))
			return nil
		}
		if d.endHeight == 0 && next > tip {
			latest, err := d.latestHeight(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("refresh chain tip: %w", err)
			}
			tip = latest
			if next > tip {
				if err := clock.SleepWithContext(ctx, d.followInterval); err != nil {
					return nil
				}
				continue
			}
		}

		select {
		case d.inboxes[worker] <- next:
			d.counters.HeightsDispatched.Add(1)
			worker = (worker + 1) % len(d.inboxes)
			next++
		case <-ctx.Done():
			return nil
		}
	}
}

func (d *distributor) latestHeight(ctx context.Context) (uint64, error) {
	var lastErr error
	for attempt := 0; attempt < d.maxRetries; attempt++ {
		height, err := d.source.LatestHeight(ctx)
		if err == nil {
			return height, nil
		}
		lastErr = err
		d.logger.Warn("latest height lookup failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		if err := clock.Backoff(ctx, attempt, d.retryBase, d.retryMax); err != nil {
			return 0, err
		}
	}
	return 0, lastErr
}
