// Package metrics implements Prometheus instrumentation for the scanner.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "keyscan7000"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

type RPCClient struct {
	network  string
	duration *prometheus.HistogramVec
}

func NewRPCClient(network string) *RPCClient {
	return &RPCClient{
		network: network,
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_client_request_duration_seconds",
			Help:      "Duration of Bitcoin JSON-RPC requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "network", "status"}),
	}
}

func (m *RPCClient) Observe(operation string, err error, started time.Time) {
	m.duration.WithLabelValues(operation, m.network, status(err)).
		Observe(time.Since(started).Seconds())
}
