// Package clickhouse persists scan results and checkpoints.
//
// All tables use ReplacingMergeTree keyed on the natural identity of a row,
// so replaying a block after a crash overwrites instead of duplicating and
// every write stays idempotent.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ErrCheckpointNotFound is returned when a scanner has no saved checkpoint.
var ErrCheckpointNotFound = errors.New("checkpoint not found")

type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

type Repository struct {
	conn    driver.Conn
	metrics Metrics
}

func NewRepository(ctx context.Context, dsn string, metrics Metrics) (*Repository, error) {
	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}
	return newRepository(conn, metrics), nil
}

func newRepository(conn driver.Conn, metrics Metrics) *Repository {
	return &Repository{
		conn:    conn,
		metrics: metrics,
	}
}

func (r *Repository) Close() error {
	return r.conn.Close()
}
