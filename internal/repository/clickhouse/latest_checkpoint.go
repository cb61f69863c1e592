package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
)

func (r *Repository) LatestCheckpoint(ctx context.Context, scannerName string) (cp model.ScanCheckpoint, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("latest_checkpoint", err, started)
	}()

	const query = `
		SELECT last_completed_height, blocks_scanned, updated_at
		FROM scan_checkpoints FINAL
		WHERE scanner_name = ?
	`
	row := r.conn.QueryRow(ctx, query, scannerName)
	if err = row.Scan(&cp.LastCompletedHeight, &cp.BlocksScanned, &cp.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = fmt.Errorf("scanner %q: %w", scannerName, ErrCheckpointNotFound)
			return model.ScanCheckpoint{}, err
		}
		err = fmt.Errorf("query checkpoint for %q: %w", scannerName, err)
		return model.ScanCheckpoint{}, err
	}
	cp.ScannerName = scannerName
	return cp, nil
}
