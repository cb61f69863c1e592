// Package batcher implements a bounded write-behind queue. Producers add
// items without waiting for persistence; a single consumer goroutine flushes
// them in batches when the batch fills or an interval elapses.
package batcher

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

type Batcher[T any] struct {
	logger        *zap.Logger
	flushCallback func(ctx context.Context, items []T) error
	flushSize     int
	flushInterval time.Duration
	rateLimiter   ratelimit.Limiter

	itemsCh chan T
	stop    chan struct{}
	done    chan struct{}
	depth   atomic.Int64
}

// New creates a batcher with a queue of the given capacity. Items are flushed
// once flushSize of them accumulate or flushInterval passes, whichever comes
// first. rps limits flush calls per second; zero disables the limit. A flush
// callback error discards the failed batch after the callback returns, so the
// callback owns retries.
func New[T any](
	logger *zap.Logger,
	flushCallback func(ctx context.Context, items []T) error,
	capacity int,
	flushSize int,
	flushInterval time.Duration,
	rps int,
) *Batcher[T] {
	if capacity < flushSize {
		capacity = flushSize
	}
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rateLimiter:   limiter,
		itemsCh:       make(chan T, capacity),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (b *Batcher[T]) Start(ctx context.Context) {
	go b.run(ctx)
}

// Stop drains everything already queued, flushes it, and returns. Add must
// not be called after Stop.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	<-b.done
}

// Add enqueues an item, blocking while the queue is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case b.itemsCh <- item:
		b.depth.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Depth returns the number of items accepted but not yet flushed.
func (b *Batcher[T]) Depth() int {
	return int(b.depth.Load())
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer close(b.done)

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	items := make([]T, 0, b.flushSize)
	for {
		select {
		case item := <-b.itemsCh:
			items = append(items, item)
			if len(items) >= b.flushSize {
				b.flush(ctx, items)
				items = items[:0]
			}
		case <-ticker.C:
			if len(items) > 0 {
				b.flush(ctx, items)
				items = items[:0]
			}
		case <-b.stop:
			b.drain(ctx, items)
			return
		}
	}
}

func (b *Batcher[T]) drain(ctx context.Context, items []T) {
	for {
		select {
		case item := <-b.itemsCh:
			items = append(items, item)
			if len(items) >= b.flushSize {
				b.flush(ctx, items)
				items = items[:0]
			}
		default:
			if len(items) > 0 {
				b.flush(ctx, items)
			}
			return
		}
	}
}

func (b *Batcher[T]) flush(ctx context.Context, items []T) {
	b.rateLimiter.Take()
	err := b.flushCallback(ctx, items)
	b.depth.Add(int64(-len(items)))
	if err != nil {
		b.logger.Error("flush failed, discarding batch",
			zap.Int("items", len(items)),
			zap.Error(err))
	}
}
