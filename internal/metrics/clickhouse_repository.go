package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ClickhouseRepository struct {
	network  string
	duration *prometheus.HistogramVec
}

func NewClickhouseRepository(network string) *ClickhouseRepository {
	return &ClickhouseRepository{
		network: network,
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clickhouse_repository_operation_duration_seconds",
			Help:      "Duration of ClickHouse repository operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "network", "status"}),
	}
}

func (m *ClickhouseRepository) Observe(operation string, err error, started time.Time) {
	m.duration.WithLabelValues(operation, m.network, status(err)).
		Observe(time.Since(started).Seconds())
}
