// Package scanner runs the P2PK exposure scanning pipeline: a distributor
// hands block heights to workers over per-worker inboxes, workers detect
// exposures and queue results, and a single writer persists batches and
// advances the resume checkpoint.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
	repository "github.com/goodnatureofminers/keyscan7000-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/keyscan7000-backend/pkg/workerpool"
)

type Config struct {
	ScannerName         string
	Network             model.Network
	StartHeight         uint64
	EndHeight           uint64 // 0 follows the chain tip
	Workers             int
	TargetDepth         int
	QueueSize           int
	BatchSize           int
	FlushInterval       time.Duration
	FlushRPS            int
	AutoPause           bool
	AutoPauseThreshold  int
	AutoResumeThreshold int
	QuickScan           bool
	PrimeInputs         bool
	MaxRetries          int
	RetryBaseDelay      time.Duration
	RetryMaxDelay       time.Duration
	FollowInterval      time.Duration
	ProgressInterval    time.Duration
}

func (c Config) withDefaults() Config {
	if c.ScannerName == "" {
		c.ScannerName = DefaultScannerName
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.TargetDepth <= 0 {
		c.TargetDepth = DefaultTargetDepth
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = DefaultFlushInterval
	}
	if c.AutoPauseThreshold <= 0 {
		c.AutoPauseThreshold = DefaultAutoPauseThreshold
	}
	if c.AutoResumeThreshold <= 0 {
		c.AutoResumeThreshold = DefaultAutoResumeThreshold
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = DefaultRetryMaxDelay
	}
	if c.FollowInterval <= 0 {
		c.FollowInterval = DefaultFollowInterval
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	return c
}

// Summary describes a finished run.
type Summary struct {
	StartHeight      uint64
	CheckpointHeight uint64
	Stats            Stats
	FailedHeights    []uint64
	Degraded         bool
}

type Service struct {
	cfg         Config
	repo        Repository
	source      Source
	scanner     BlockScanner
	newResolver func() PrevOutResolver
	metrics     Metrics
	logger      *zap.Logger

	commands chan Command
	counters Counters
}

func New(
	cfg Config,
	repo Repository,
	source Source,
	blockScanner BlockScanner,
	newResolver func() PrevOutResolver,
	metrics Metrics,
	logger *zap.Logger,
) (*Service, error) {
	cfg = cfg.withDefaults()
	if cfg.EndHeight > 0 && cfg.EndHeight < cfg.StartHeight {
		return nil, fmt.Errorf("end height %d below start height %d", cfg.EndHeight, cfg.StartHeight)
	}
	if cfg.AutoResumeThreshold >= cfg.AutoPauseThreshold {
		return nil, fmt.Errorf("auto-resume threshold %d must be below auto-pause threshold %d",
			cfg.AutoResumeThreshold, cfg.AutoPauseThreshold)
	}
	return &Service{
		cfg:         cfg,
		repo:        repo,
		source:      source,
		scanner:     blockScanner,
		newResolver: newResolver,
		metrics:     metrics,
		logger:      logger,
		commands:    make(chan Command),
	}, nil
}

// Commands is where the interactive console delivers instructions.
func (s *Service) Commands() chan<- Command {
	return s.commands
}

func (s *Service) Run(ctx context.Context) (Summary, error) {
	start, err := s.resumeHeight(ctx)
	if err != nil {
		return Summary{}, err
	}
	if s.cfg.EndHeight > 0 && start > s.cfg.EndHeight {
		s.logger.Info("nothing to scan, checkpoint past end height",
			zap.Uint64("resume_height", start),
			zap.Uint64("end_height", s.cfg.EndHeight))
		return Summary{StartHeight: start}, nil
	}
	s.logger.Info("starting scan",
		zap.String("scanner", s.cfg.ScannerName),
		zap.String("network", string(s.cfg.Network)),
		zap.Uint64("start_height", start),
		zap.Uint64("end_height", s.cfg.EndHeight),
		zap.Int("workers", s.cfg.Workers))

	progress := newProgressTracker(start)
	gate := newPauseGate()

	wr := newWriter(s.repo, progress, &s.counters, s.metrics, s.logger.Named("writer"), writerConfig{
		scannerName:   s.cfg.ScannerName,
		queueSize:     s.cfg.QueueSize,
		batchSize:     s.cfg.BatchSize,
		flushInterval: s.cfg.FlushInterval,
		flushRPS:      s.cfg.FlushRPS,
		maxRetries:    s.cfg.MaxRetries,
		retryBase:     s.cfg.RetryBaseDelay,
		retryMax:      s.cfg.RetryMaxDelay,
	})
	// The writer outlives ctx so a cancelled run still gets its final flush.
	wr.Start(context.Background())

	inboxes := make([]chan uint64, s.cfg.Workers)
	for i := range inboxes {
		inboxes[i] = make(chan uint64, s.cfg.TargetDepth)
	}

	// Stopping dispatch, not the workers, is what triggers a drain: the
	// distributor closes the inboxes on return and workers exit once empty.
	dispatchCtx, stopDispatch := context.WithCancel(ctx)
	defer stopDispatch()

	dist := &distributor{
		source:         s.source,
		inboxes:        inboxes,
		gate:           gate,
		counters:       &s.counters,
		logger:         s.logger.Named("distributor"),
		startHeight:    start,
		endHeight:      s.cfg.EndHeight,
		followInterval: s.cfg.FollowInterval,
		maxRetries:     s.cfg.MaxRetries,
		retryBase:      s.cfg.RetryBaseDelay,
		retryMax:       s.cfg.RetryMaxDelay,
	}
	distDone := make(chan error, 1)
	go func() {
		distDone <- dist.run(dispatchCtx)
	}()

	// Workers also outlive ctx: a cancelled run stops the distributor, but
	// the heights already in the inboxes still get fetched, scanned and
	// persisted. Running them on the cancelled context would fail healthy
	// heights into the frontier and checkpoint past unscanned blocks.
	workCtx := context.Background()
	workersWait := workerpool.Start(s.cfg.Workers, func(i int) {
		w := &worker{
			id:          i,
			source:      s.source,
			scanner:     s.scanner,
			resolver:    s.newResolver(),
			progress:    progress,
			counters:    &s.counters,
			metrics:     s.metrics,
			logger:      s.logger.Named("worker"),
			quickScan:   s.cfg.QuickScan,
			primeInputs: s.cfg.PrimeInputs,
			maxRetries:  s.cfg.MaxRetries,
			retryBase:   s.cfg.RetryBaseDelay,
			retryMax:    s.cfg.RetryMaxDelay,
		}
		w.run(workCtx, inboxes[i], wr)
	})
	workersDone := make(chan struct{})
	go func() {
		workersWait()
		close(workersDone)
	}()

	pauseCtx, stopPauser := context.WithCancel(context.Background())
	defer stopPauser()
	if s.cfg.AutoPause {
		pauser := &autoPauser{
			gate:     gate,
			depth:    wr.Depth,
			high:     s.cfg.AutoPauseThreshold,
			low:      s.cfg.AutoResumeThreshold,
			interval: DefaultAutoPauseInterval,
			metrics:  s.metrics,
			logger:   s.logger.Named("autopause"),
		}
		go pauser.run(pauseCtx)
	}

	ticker := time.NewTicker(s.cfg.ProgressInterval)
	defer ticker.Stop()

	ctxDone := ctx.Done()
	for {
		select {
		case cmd := <-s.commands:
			s.handleCommand(ctx, cmd, gate, wr, progress, stopDispatch, inboxes)
		case <-ticker.C:
			s.logProgress(progress, wr)
		case <-ctxDone:
			ctxDone = nil
			s.logger.Info("shutdown requested, draining pipeline")
			stopDispatch()
		case <-workersDone:
			stopPauser()
			if gate.Paused() {
				gate.Resume()
			}
			wr.Stop()
			distErr := <-distDone
			return s.finish(progress, wr, start, distErr)
		}
	}
}

func (s *Service) resumeHeight(ctx context.Context) (uint64, error) {
	cp, err := s.repo.LatestCheckpoint(ctx, s.cfg.ScannerName)
	switch {
	case err == nil:
		resume := cp.LastCompletedHeight + 1
		if resume < s.cfg.StartHeight {
			resume = s.cfg.StartHeight
		}
		s.logger.Info("resuming from checkpoint",
			zap.Uint64("checkpoint_height", cp.LastCompletedHeight),
			zap.Uint64("resume_height", resume))
		return resume, nil
	case errors.Is(err, repository.ErrCheckpointNotFound):
		return s.cfg.StartHeight, nil
	default:
		return 0, fmt.Errorf("load checkpoint: %w", err)
	}
}

func (s *Service) finish(progress *progressTracker, wr *writer, start uint64, distErr error) (Summary, error) {
	stats := s.counters.Snapshot()
	frontier, _ := progress.frontier()
	summary := Summary{
		StartHeight:      start,
		CheckpointHeight: frontier,
		Stats:            stats,
		FailedHeights:    progress.failedHeights(),
		Degraded:         wr.Degraded(),
	}
	s.logger.Info("scan finished",
		zap.Uint64("checkpoint_height", summary.CheckpointHeight),
		zap.Uint64("blocks_scanned", stats.BlocksScanned),
		zap.Uint64("blocks_skipped", stats.BlocksSkipped),
		zap.Uint64("blocks_failed", stats.BlocksFailed),
		zap.Uint64("events_detected", stats.EventsDetected),
		zap.Uint64("events_persisted", stats.EventsPersisted),
		zap.Uint64s("failed_heights", summary.FailedHeights),
		zap.Uint64s("unpersisted_heights", wr.AbandonedHeights()))

	if distErr != nil {
		return summary, fmt.Errorf("distributor: %w", distErr)
	}
	if summary.Degraded {
		return summary, fmt.Errorf("writer degraded, %d blocks unpersisted", len(wr.AbandonedHeights()))
	}
	if len(summary.FailedHeights) > 0 {
		return summary, fmt.Errorf("%d blocks failed and were skipped", len(summary.FailedHeights))
	}
	return summary, nil
}

func (s *Service) handleCommand(
	ctx context.Context,
	cmd Command,
	gate *pauseGate,
	wr *writer,
	progress *progressTracker,
	stopDispatch context.CancelFunc,
	inboxes []chan uint64,
) {
	switch cmd {
	case CmdQuit:
		s.logger.Info("quit requested, draining pipeline")
		stopDispatch()
	case CmdPause:
		if gate.Paused() {
			gate.Resume()
			s.metrics.SetPaused(false)
			s.logger.Info("dispatch resumed")
		} else {
			gate.Pause()
			s.metrics.SetPaused(true)
			s.logger.Info("dispatch paused")
		}
	case CmdStatus:
		s.logStatus(ctx, progress, wr)
	case CmdIntegrity:
		stats := s.counters.Snapshot()
		s.logger.Info("integrity",
			zap.Uint64("events_detected", stats.EventsDetected),
			zap.Uint64("events_persisted", stats.EventsPersisted),
			zap.Uint64("event_gap", stats.EventGap()),
			zap.Uint64("flush_failures", stats.FlushFailures),
			zap.Uint64s("failed_heights", progress.failedHeights()),
			zap.Bool("degraded", wr.Degraded()))
	case CmdMetrics:
		stats := s.counters.Snapshot()
		s.logger.Info("metrics",
			zap.Uint64("heights_dispatched", stats.HeightsDispatched),
			zap.Uint64("blocks_scanned", stats.BlocksScanned),
			zap.Uint64("blocks_skipped", stats.BlocksSkipped),
			zap.Uint64("blocks_failed", stats.BlocksFailed),
			zap.Uint64("txs_scanned", stats.TxsScanned),
			zap.Uint64("batches_flushed", stats.BatchesFlushed))
	case CmdQueue:
		depths := make([]int, len(inboxes))
		for i, inbox := range inboxes {
			depths[i] = len(inbox)
		}
		s.logger.Info("queues",
			zap.Int("output_queue_depth", wr.Depth()),
			zap.Ints("worker_inbox_depths", depths),
			zap.Bool("paused", gate.Paused()))
	default:
		s.logger.Info("commands",
			zap.String("q", "quit after draining"),
			zap.String("p", "toggle pause"),
			zap.String("s", "status report"),
			zap.String("i", "integrity report"),
			zap.String("m", "throughput counters"),
			zap.String("u", "queue depths"))
	}
}

func (s *Service) logStatus(ctx context.Context, progress *progressTracker, wr *writer) {
	stats := s.counters.Snapshot()
	fields := []zap.Field{
		zap.Uint64("blocks_scanned", stats.BlocksScanned),
		zap.Uint64("events_detected", stats.EventsDetected),
		zap.Int("output_queue_depth", wr.Depth()),
	}
	if frontier, ok := progress.frontier(); ok {
		fields = append(fields, zap.Uint64("checkpoint_height", frontier))
	}
	report, err := s.repo.AddressBalances(ctx, 5)
	if err != nil {
		s.logger.Warn("address balance query failed", zap.Error(err))
	} else {
		fields = append(fields,
			zap.Uint64("exposed_addresses", report.TotalAddresses),
			zap.Int64("total_balance_sats", report.TotalBalanceSats))
		for _, addr := range report.Top {
			fields = append(fields, zap.Int64(addr.Address, addr.CurrentBalance))
		}
	}
	s.logger.Info("status", fields...)
}

func (s *Service) logProgress(progress *progressTracker, wr *writer) {
	stats := s.counters.Snapshot()
	frontier, _ := progress.frontier()
	s.logger.Info("progress",
		zap.Uint64("checkpoint_height", frontier),
		zap.Uint64("heights_dispatched", stats.HeightsDispatched),
		zap.Uint64("blocks_scanned", stats.BlocksScanned),
		zap.Uint64("blocks_skipped", stats.BlocksSkipped),
		zap.Uint64("blocks_failed", stats.BlocksFailed),
		zap.Uint64("events_detected", stats.EventsDetected),
		zap.Int("output_queue_depth", wr.Depth()),
		zap.Int("above_frontier", progress.aboveFrontier()))
}
