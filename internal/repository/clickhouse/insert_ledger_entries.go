package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
)

func (r *Repository) InsertLedgerEntries(ctx context.Context, entries []model.LedgerEntry) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("insert_ledger_entries", err, started)
	}()

	if len(entries) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, `
		INSERT INTO ledger_entries
			(address, public_key_hex, block_height, direction, amount_sats, txid, tx_index)
	`)
	if err != nil {
		return fmt.Errorf("prepare ledger entries batch: %w", err)
	}
	for _, entry := range entries {
		if err = batch.Append(
			entry.Address,
			entry.PublicKeyHex,
			entry.BlockHeight,
			string(entry.Direction),
			entry.AmountSats,
			entry.TxID,
			entry.TxIndex,
		); err != nil {
			return fmt.Errorf("append ledger entry %s/%s: %w", entry.Address, entry.TxID, err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("send %d ledger entries: %w", len(entries), err)
	}
	return nil
}
