//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package scanner

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/chain"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/detect"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
	repository "github.com/goodnatureofminers/keyscan7000-backend/internal/repository/clickhouse"
)

type (
	Source interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*chain.Block, error)
	}

	Repository interface {
		InsertExposureEvents(ctx context.Context, events []model.ExposureEvent) error
		InsertLedgerEntries(ctx context.Context, entries []model.LedgerEntry) error
		RefreshAddressAggregates(ctx context.Context, addresses []string) error
		LatestCheckpoint(ctx context.Context, scannerName string) (model.ScanCheckpoint, error)
		SaveCheckpoint(ctx context.Context, cp model.ScanCheckpoint) error
		AddressBalances(ctx context.Context, limit int) (repository.BalanceReport, error)
	}

	BlockScanner interface {
		Scan(ctx context.Context, block *chain.Block, prev detect.PrevOutSource) (model.BlockBatch, error)
	}

	// PrevOutResolver is owned by exactly one worker and needs no locking.
	PrevOutResolver interface {
		Seed(block *chain.Block)
		Prime(ctx context.Context, txids []string) error
		PrevOutput(ctx context.Context, txid string, vout uint32) (*btcjson.Vout, error)
	}

	Metrics interface {
		ObserveBlock(err error, started time.Time)
		ObserveFlush(err error, batches int, started time.Time)
		SetQueueDepth(depth int)
		SetPaused(paused bool)
		SetCheckpointHeight(height uint64)
		AddDetections(count int)
	}
)
