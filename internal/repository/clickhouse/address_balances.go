package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
)

// BalanceReport summarizes the exposed address set for status reporting.
type BalanceReport struct {
	TotalAddresses   uint64
	TotalBalanceSats int64
	Top              []model.ExposedAddress
}

// AddressBalances returns overall totals plus the limit richest exposed
// addresses by current balance.
func (r *Repository) AddressBalances(ctx context.Context, limit int) (report BalanceReport, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("address_balances", err, started)
	}()

	const totalsQuery = `
		SELECT count(), coalesce(sum(current_balance_sats), 0)
		FROM exposed_addresses FINAL
	`
	row := r.conn.QueryRow(ctx, totalsQuery)
	if err = row.Scan(&report.TotalAddresses, &report.TotalBalanceSats); err != nil {
		err = fmt.Errorf("query address totals: %w", err)
		return BalanceReport{}, err
	}

	const topQuery = `
		SELECT address, public_key_hex, first_seen_height, first_seen_txid,
		       last_seen_height, total_received_sats, current_balance_sats,
		       is_spent, updated_at
		FROM exposed_addresses FINAL
		ORDER BY current_balance_sats DESC
		LIMIT ?
	`
	rows, err := r.conn.Query(ctx, topQuery, limit)
	if err != nil {
		err = fmt.Errorf("query top addresses: %w", err)
		return BalanceReport{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var addr model.ExposedAddress
		if err = rows.Scan(
			&addr.Address,
			&addr.PublicKeyHex,
			&addr.FirstSeenHeight,
			&addr.FirstSeenTxID,
			&addr.LastSeenHeight,
			&addr.TotalReceived,
			&addr.CurrentBalance,
			&addr.IsSpent,
			&addr.UpdatedAt,
		); err != nil {
			err = fmt.Errorf("scan exposed address: %w", err)
			return BalanceReport{}, err
		}
		report.Top = append(report.Top, addr)
	}
	if err = rows.Err(); err != nil {
		err = fmt.Errorf("iterate top addresses: %w", err)
		return BalanceReport{}, err
	}
	return report, nil
}
