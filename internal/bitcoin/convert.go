package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// BtcToSatoshis converts a BTC amount from an RPC response to satoshis,
// rounding through btcutil to avoid float drift on amounts like 0.1.
func BtcToSatoshis(btc float64) (uint64, error) {
	amount, err := btcutil.NewAmount(btc)
	if err != nil {
		return 0, fmt.Errorf("convert %f BTC to satoshis: %w", btc, err)
	}
	if amount < 0 {
		return 0, fmt.Errorf("negative amount %f BTC", btc)
	}
	return uint64(amount), nil
}
