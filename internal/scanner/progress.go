package scanner

import (
	"sort"
	"sync"
)

// progressTracker maintains the contiguous completion frontier. A height
// counts toward the frontier once it is either persisted or given up on, so a
// single bad block cannot stall the checkpoint forever. Failed heights are
// tracked separately and reported at shutdown.
type progressTracker struct {
	mu        sync.Mutex
	start     uint64
	next      uint64
	done      map[uint64]struct{}
	failed    map[uint64]struct{}
	completed uint64
}

func newProgressTracker(start uint64) *progressTracker {
	return &progressTracker{
		start:  start,
		next:   start,
		done:   make(map[uint64]struct{}),
		failed: make(map[uint64]struct{}),
	}
}

func (p *progressTracker) markDone(height uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.record(height) {
		p.completed++
	}
}

func (p *progressTracker) markFailed(height uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.record(height) {
		p.failed[height] = struct{}{}
	}
}

func (p *progressTracker) record(height uint64) bool {
	if height < p.next {
		return false
	}
	if _, ok := p.done[height]; ok {
		return false
	}
	p.done[height] = struct{}{}
	for {
		if _, ok := p.done[p.next]; !ok {
			break
		}
		delete(p.done, p.next)
		p.next++
	}
	return true
}

// frontier returns the highest height h such that every height in
// [start, h] is done. ok is false until the start height itself completes.
func (p *progressTracker) frontier() (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.next == p.start {
		return 0, false
	}
	return p.next - 1, true
}

// completedCount returns the number of successfully completed heights.
func (p *progressTracker) completedCount() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// aboveFrontier returns how many heights completed out of order and wait
// for a gap below them to fill.
func (p *progressTracker) aboveFrontier() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.done)
}

func (p *progressTracker) failedHeights() []uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	heights := make([]uint64, 0, len(p.failed))
	for h := range p.failed {
		heights = append(heights, h)
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })
	return heights
}
