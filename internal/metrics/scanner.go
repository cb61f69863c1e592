package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Scanner struct {
	network string

	blockDuration    *prometheus.HistogramVec
	flushDuration    *prometheus.HistogramVec
	flushBatchSize   *prometheus.HistogramVec
	detections       *prometheus.CounterVec
	queueDepth       *prometheus.GaugeVec
	paused           *prometheus.GaugeVec
	checkpointHeight *prometheus.GaugeVec
}

func NewScanner(network string) *Scanner {
	return &Scanner{
		network: network,
		blockDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scanner_block_duration_seconds",
			Help:      "Duration of fetching and scanning one block.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"network", "status"}),
		flushDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scanner_flush_duration_seconds",
			Help:      "Duration of persisting one batch of scanned blocks.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"network", "status"}),
		flushBatchSize: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scanner_flush_blocks",
			Help:      "Number of blocks per flush.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"network", "status"}),
		detections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scanner_exposure_events_total",
			Help:      "Total detected P2PK exposure events.",
		}, []string{"network"}),
		queueDepth: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scanner_output_queue_depth",
			Help:      "Blocks waiting in the output queue.",
		}, []string{"network"}),
		paused: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scanner_paused",
			Help:      "1 while dispatch is paused.",
		}, []string{"network"}),
		checkpointHeight: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scanner_checkpoint_height",
			Help:      "Last durably checkpointed block height.",
		}, []string{"network"}),
	}
}

func (m *Scanner) ObserveBlock(err error, started time.Time) {
	m.blockDuration.WithLabelValues(m.network, status(err)).
		Observe(time.Since(started).Seconds())
}

func (m *Scanner) ObserveFlush(err error, batches int, started time.Time) {
	m.flushDuration.WithLabelValues(m.network, status(err)).
		Observe(time.Since(started).Seconds())
	m.flushBatchSize.WithLabelValues(m.network, status(err)).
		Observe(float64(batches))
}

func (m *Scanner) SetQueueDepth(depth int) {
	m.queueDepth.WithLabelValues(m.network).Set(float64(depth))
}

func (m *Scanner) SetPaused(paused bool) {
	value := 0.0
	if paused {
		value = 1.0
	}
	m.paused.WithLabelValues(m.network).Set(value)
}

func (m *Scanner) SetCheckpointHeight(height uint64) {
	m.checkpointHeight.WithLabelValues(m.network).Set(float64(height))
}

func (m *Scanner) AddDetections(count int) {
	m.detections.WithLabelValues(m.network).Add(float64(count))
}
