package scanner

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// autoPauser samples the writer queue depth and pauses dispatch when it
// crosses the high watermark, resuming once it falls back to the low one.
// The gap between the two watermarks keeps it from flapping. It only ever
// resumes a pause it engaged itself, so operator pauses stick.
type autoPauser struct {
	gate     *pauseGate
	depth    func() int
	high     int
	low      int
	interval time.Duration
	metrics  Metrics
	logger   *zap.Logger

	engaged bool
}

func (a *autoPauser) run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		depth := a.depth()
		a.metrics.SetQueueDepth(depth)

		switch {
		case depth >= a.high && !a.gate.Paused():
			a.gate.Pause()
			a.engaged = true
			a.metrics.SetPaused(true)
			a.logger.Warn("output queue above high watermark, pausing dispatch",
				zap.Int("depth", depth),
				zap.Int("high_watermark", a.high))
		case depth <= a.low && a.engaged && a.gate.Paused():
			a.gate.Resume()
			a.engaged = false
			a.metrics.SetPaused(false)
			a.logger.Info("output queue drained to low watermark, resuming dispatch",
				zap.Int("depth", depth),
				zap.Int("low_watermark", a.low))
		}
	}
}
