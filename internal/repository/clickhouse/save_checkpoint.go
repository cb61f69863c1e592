package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
)

func (r *Repository) SaveCheckpoint(ctx context.Context, cp model.ScanCheckpoint) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("save_checkpoint", err, started)
	}()

	const query = `
		INSERT INTO scan_checkpoints
			(scanner_name, last_completed_height, blocks_scanned, updated_at)
		VALUES (?, ?, ?, ?)
	`
	if err = r.conn.Exec(ctx, query,
		cp.ScannerName,
		cp.LastCompletedHeight,
		cp.BlocksScanned,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("save checkpoint for %q at height %d: %w",
			cp.ScannerName, cp.LastCompletedHeight, err)
	}
	return nil
}
