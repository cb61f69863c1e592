// Package detect extracts exposed public keys from Bitcoin scripts.
//
// A P2PK locking script pushes a raw public key followed by OP_CHECKSIG,
// so spending (or being able to spend) it reveals the key itself. Detection
// is a pure function over script data; it holds no state and performs no IO.
package detect

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
)

// PublicKeyFromScript returns the raw public key exposed by a P2PK locking
// script, or false when the script is not P2PK. The key is returned as
// lowercase hex.
func PublicKeyFromScript(spk btcjson.ScriptPubKeyResult) (string, bool) {
	// P2PKH hides the key behind a hash and is intentionally not tracked.
	if spk.Type == "pubkeyhash" {
		return "", false
	}

	if spk.Type == "pubkey" {
		parts := strings.Fields(spk.Asm)
		if len(parts) >= 2 && parts[len(parts)-1] == "OP_CHECKSIG" {
			key := strings.ToLower(parts[0])
			if validPublicKeyHex(key) {
				return key, true
			}
		}
	}

	// Nodes that omit asm/type still provide the raw script hex:
	// <push> <pubkey> OP_CHECKSIG (0xac).
	h := strings.ToLower(spk.Hex)
	switch {
	case len(h) == 134 && strings.HasPrefix(h, "41") && strings.HasSuffix(h, "ac"):
		key := h[2 : len(h)-2]
		if validPublicKeyHex(key) {
			return key, true
		}
	case len(h) == 70 && strings.HasPrefix(h, "21") && strings.HasSuffix(h, "ac"):
		key := h[2 : len(h)-2]
		if validPublicKeyHex(key) {
			return key, true
		}
	}

	return "", false
}

// AddressFromPublicKey derives the pay-to-pubkey address string for a raw
// public key on the given network.
func AddressFromPublicKey(publicKeyHex string, params *chaincfg.Params) (string, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return "", fmt.Errorf("decode public key %q: %w", publicKeyHex, err)
	}
	addr, err := btcutil.NewAddressPubKey(raw, params)
	if err != nil {
		return "", fmt.Errorf("derive address for public key %s: %w", publicKeyHex, err)
	}
	return addr.EncodeAddress(), nil
}

// MightSpendExposedOutput reports whether an input could plausibly spend a
// P2PK output, based on the unlocking script alone. P2PK inputs carry a bare
// signature push (71-73 bytes). The check is conservative: unknown shapes
// return true so the previous output is still resolved and inspected.
func MightSpendExposedOutput(vin btcjson.Vin) bool {
	if vin.ScriptSig == nil || vin.ScriptSig.Asm == "" {
		return true
	}
	parts := strings.Fields(vin.ScriptSig.Asm)
	if len(parts) == 0 {
		return true
	}
	// More than one push means P2PKH or script-hash style spending, never
	// a bare P2PK signature.
	if len(parts) != 1 {
		return false
	}
	sig := parts[0]
	if strings.HasPrefix(sig, "OP_") {
		return false
	}
	return len(sig) >= 142 && len(sig) <= 146
}

// ChainParams maps a network name to btcd chain parameters.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

func validPublicKeyHex(key string) bool {
	switch len(key) {
	case 130:
		if !strings.HasPrefix(key, "04") {
			return false
		}
	case 66:
		if !strings.HasPrefix(key, "02") && !strings.HasPrefix(key, "03") {
			return false
		}
	default:
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}
