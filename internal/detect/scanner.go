package detect

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/bitcoin"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/chain"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
)

// PrevOutSource resolves the output an input spends.
type PrevOutSource interface {
	PrevOutput(ctx context.Context, txid string, vout uint32) (*btcjson.Vout, error)
}

// BlockScanner walks a block's transactions and collects every exposure of a
// raw public key: outputs locked by P2PK scripts (credits) and inputs spending
// such outputs (debits).
type BlockScanner struct {
	params *chaincfg.Params
}

func NewBlockScanner(params *chaincfg.Params) *BlockScanner {
	return &BlockScanner{params: params}
}

func (s *BlockScanner) Scan(ctx context.Context, block *chain.Block, prev PrevOutSource) (model.BlockBatch, error) {
	batch := model.BlockBatch{
		Height:    block.Height,
		BlockTime: block.Time,
	}

	for i := range block.Txs {
		tx := &block.Txs[i]
		// Every exposing output and input becomes its own event and ledger
		// entry. Sightings only drive aggregate refreshes, so one per
		// address per transaction is enough.
		sighted := make(map[string]struct{})

		for _, vout := range tx.Vout {
			key, ok := PublicKeyFromScript(vout.ScriptPubKey)
			if !ok {
				continue
			}
			if err := s.record(&batch, sighted, tx.Txid, vout.N, key, model.Credit, vout.Value); err != nil {
				return model.BlockBatch{}, err
			}
		}

		for n, vin := range tx.Vin {
			if vin.IsCoinBase() || vin.Txid == "" {
				continue
			}
			if !MightSpendExposedOutput(vin) {
				continue
			}
			spent, err := prev.PrevOutput(ctx, vin.Txid, vin.Vout)
			if err != nil {
				return model.BlockBatch{}, fmt.Errorf("block %d tx %s input %s:%d: %w",
					block.Height, tx.Txid, vin.Txid, vin.Vout, err)
			}
			key, ok := PublicKeyFromScript(spent.ScriptPubKey)
			if !ok {
				continue
			}
			if err := s.record(&batch, sighted, tx.Txid, uint32(n), key, model.Debit, spent.Value); err != nil {
				return model.BlockBatch{}, err
			}
		}
	}

	return batch, nil
}

func (s *BlockScanner) record(
	batch *model.BlockBatch,
	sighted map[string]struct{},
	txid string,
	txIndex uint32,
	publicKeyHex string,
	direction model.Direction,
	valueBTC float64,
) error {
	address, err := AddressFromPublicKey(publicKeyHex, s.params)
	if err != nil {
		return err
	}
	amount, err := bitcoin.BtcToSatoshis(valueBTC)
	if err != nil {
		return fmt.Errorf("tx %s: %w", txid, err)
	}

	batch.Events = append(batch.Events, model.ExposureEvent{
		Address:     address,
		TxID:        txid,
		TxIndex:     txIndex,
		BlockHeight: batch.Height,
		BlockTime:   batch.BlockTime,
		Direction:   direction,
		AmountSats:  amount,
	})
	batch.Entries = append(batch.Entries, model.LedgerEntry{
		Address:      address,
		PublicKeyHex: publicKeyHex,
		BlockHeight:  batch.Height,
		Direction:    direction,
		AmountSats:   amount,
		TxID:         txid,
		TxIndex:      txIndex,
	})
	if _, ok := sighted[address]; !ok {
		sighted[address] = struct{}{}
		batch.Sightings = append(batch.Sightings, model.AddressSighting{
			Address:      address,
			PublicKeyHex: publicKeyHex,
			BlockHeight:  batch.Height,
			TxID:         txid,
		})
	}
	return nil
}
