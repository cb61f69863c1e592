package detect

import (
	"strings"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/chain"
)

// BlockMayContainExposure is a cheap pre-filter over a block's output
// scripts. It never inspects inputs, so blocks that only spend previously
// exposed outputs are missed when the filter is enabled. That trade-off is
// opt-in and documented on the --quick-scan flag.
func BlockMayContainExposure(block *chain.Block) bool {
	for _, tx := range block.Txs {
		for _, vout := range tx.Vout {
			if vout.ScriptPubKey.Type == "pubkey" {
				return true
			}
			h := vout.ScriptPubKey.Hex
			if h == "" {
				if strings.Contains(vout.ScriptPubKey.Asm, "OP_CHECKSIG") &&
					!strings.Contains(vout.ScriptPubKey.Asm, "OP_DUP") {
					return true
				}
				continue
			}
			if len(h) == 134 && strings.HasPrefix(h, "41") && strings.HasSuffix(h, "ac") {
				return true
			}
			if len(h) == 70 && strings.HasPrefix(h, "21") && strings.HasSuffix(h, "ac") {
				return true
			}
		}
	}
	return false
}
