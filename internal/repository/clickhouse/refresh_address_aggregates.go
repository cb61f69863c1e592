package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// RefreshAddressAggregates recomputes the exposed_addresses rows for the
// given addresses from their full ledger history. Aggregates are never
// adjusted with deltas; recomputing from the ledger keeps the table correct
// even when a block is replayed.
func (r *Repository) RefreshAddressAggregates(ctx context.Context, addresses []string) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("refresh_address_aggregates", err, started)
	}()

	if len(addresses) == 0 {
		return nil
	}

	const query = `
		INSERT INTO exposed_addresses
			(address, public_key_hex, first_seen_height, first_seen_txid, last_seen_height,
			 total_received_sats, current_balance_sats, is_spent, updated_at)
		SELECT
			address,
			any(public_key_hex),
			min(block_height),
			argMin(txid, block_height),
			max(block_height),
			sumIf(amount_sats, direction = 'credit'),
			toInt64(sumIf(amount_sats, direction = 'credit'))
				- toInt64(sumIf(amount_sats, direction = 'debit')),
			countIf(direction = 'debit') > 0
				AND toInt64(sumIf(amount_sats, direction = 'credit'))
					<= toInt64(sumIf(amount_sats, direction = 'debit')),
			now64(3)
		FROM ledger_entries FINAL
		WHERE address IN (?)
		GROUP BY address
	`
	if err = r.conn.Exec(ctx, query, addresses); err != nil {
		return fmt.Errorf("refresh aggregates for %d addresses: %w", len(addresses), err)
	}
	return nil
}
