package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
)

func (r *Repository) InsertExposureEvents(ctx context.Context, events []model.ExposureEvent) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("insert_exposure_events", err, started)
	}()

	if len(events) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, `
		INSERT INTO exposure_events
			(address, txid, tx_index, block_height, block_time, direction, amount_sats)
	`)
	if err != nil {
		return fmt.Errorf("prepare exposure events batch: %w", err)
	}
	for _, event := range events {
		if err = batch.Append(
			event.Address,
			event.TxID,
			event.TxIndex,
			event.BlockHeight,
			event.BlockTime,
			string(event.Direction),
			event.AmountSats,
		); err != nil {
			return fmt.Errorf("append exposure event %s/%s: %w", event.Address, event.TxID, err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("send %d exposure events: %w", len(events), err)
	}
	return nil
}
