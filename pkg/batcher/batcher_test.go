package batcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]int
	err     error
}

func (r *recorder) flush(_ context.Context, items []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch := make([]int, len(items))
	copy(batch, items)
	r.batches = append(r.batches, batch)
	return r.err
}

func (r *recorder) snapshot() [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]int, len(r.batches))
	copy(out, r.batches)
	return out
}

func TestBatcherFlushesOnSize(t *testing.T) {
	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 100, 3, time.Hour, 0)
	b.Start(context.Background())

	for i := 0; i < 6; i++ {
		if err := b.Add(context.Background(), i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	b.Stop()

	batches := rec.snapshot()
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if len(batches[0]) != 3 || len(batches[1]) != 3 {
		t.Fatalf("expected batches of 3, got %d and %d", len(batches[0]), len(batches[1]))
	}
}

func TestBatcherFlushesOnInterval(t *testing.T) {
	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 100, 1000, 20*time.Millisecond, 0)
	b.Start(context.Background())
	defer b.Stop()

	if err := b.Add(context.Background(), 42); err != nil {
		t.Fatalf("add: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if batches := rec.snapshot(); len(batches) == 1 {
			if batches[0][0] != 42 {
				t.Fatalf("expected item 42, got %v", batches[0])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("interval flush never happened")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBatcherStopDrainsQueue(t *testing.T) {
	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 100, 1000, time.Hour, 0)
	b.Start(context.Background())

	for i := 0; i < 10; i++ {
		if err := b.Add(context.Background(), i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	b.Stop()

	batches := rec.snapshot()
	total := 0
	for _, batch := range batches {
		total += len(batch)
	}
	if total != 10 {
		t.Fatalf("expected all 10 items flushed on stop, got %d", total)
	}
	if b.Depth() != 0 {
		t.Fatalf("expected zero depth after stop, got %d", b.Depth())
	}
}

func TestBatcherDepth(t *testing.T) {
	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 100, 1000, time.Hour, 0)

	for i := 0; i < 4; i++ {
		if err := b.Add(context.Background(), i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if b.Depth() != 4 {
		t.Fatalf("expected depth 4, got %d", b.Depth())
	}

	b.Start(context.Background())
	b.Stop()
	if b.Depth() != 0 {
		t.Fatalf("expected depth 0 after drain, got %d", b.Depth())
	}
}

func TestBatcherAddBlocksUntilCancel(t *testing.T) {
	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 2, 2, time.Hour, 0)

	// Queue full, run loop not started.
	for i := 0; i < 2; i++ {
		if err := b.Add(context.Background(), i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := b.Add(ctx, 99); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestBatcherSurvivesFlushError(t *testing.T) {
	rec := &recorder{err: errors.New("storage down")}
	b := New(zap.NewNop(), rec.flush, 100, 2, time.Hour, 0)
	b.Start(context.Background())

	for i := 0; i < 4; i++ {
		if err := b.Add(context.Background(), i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	b.Stop()

	if len(rec.snapshot()) != 2 {
		t.Fatalf("expected both batches attempted, got %d", len(rec.snapshot()))
	}
}
