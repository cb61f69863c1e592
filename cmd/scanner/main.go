package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/keyscan7000-backend/internal/bitcoin"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/chain"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/detect"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/metrics"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/model"
	obsrpc "github.com/goodnatureofminers/keyscan7000-backend/internal/pkg/btcd/rpcclient"
	repository "github.com/goodnatureofminers/keyscan7000-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/keyscan7000-backend/internal/scanner"
)

type config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"P2PK_SCANNER_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Network       string `long:"network" env:"P2PK_SCANNER_NETWORK" description:"network name" default:"mainnet"`
	RPCURL        string `long:"rpc-url" env:"P2PK_SCANNER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string `long:"rpc-user" env:"P2PK_SCANNER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string `long:"rpc-password" env:"P2PK_SCANNER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	MetricsAddr   string `long:"metrics-addr" env:"P2PK_SCANNER_METRICS_ADDR" description:"Prometheus metrics listen address" default:":9090"`

	ScannerName string `long:"scanner-name" env:"P2PK_SCANNER_NAME" description:"checkpoint name for this scanner" default:"p2pk_scanner"`
	StartBlock  uint64 `long:"start-block" env:"P2PK_SCANNER_START_BLOCK" description:"first block height to scan"`
	EndBlock    uint64 `long:"end-block" env:"P2PK_SCANNER_END_BLOCK" description:"last block height to scan, 0 follows the chain tip"`

	Threads       int           `long:"threads" env:"P2PK_SCANNER_THREADS" description:"number of scanning workers" default:"8"`
	TargetDepth   int           `long:"target-depth" env:"P2PK_SCANNER_TARGET_DEPTH" description:"per-worker inbox capacity" default:"4"`
	QueueSize     int           `long:"queue-size" env:"P2PK_SCANNER_QUEUE_SIZE" description:"output queue capacity in blocks" default:"100000"`
	BatchSize     int           `long:"batch-size" env:"P2PK_SCANNER_BATCH_SIZE" description:"blocks per storage flush" default:"1000"`
	FlushInterval time.Duration `long:"flush-interval" env:"P2PK_SCANNER_FLUSH_INTERVAL" description:"max time between storage flushes" default:"2s"`
	FlushRPS      int           `long:"flush-rps" env:"P2PK_SCANNER_FLUSH_RPS" description:"max storage flushes per second, 0 is unlimited"`

	AutoPauseThreshold  int  `long:"auto-pause-threshold" env:"P2PK_SCANNER_AUTO_PAUSE_THRESHOLD" description:"queue depth that pauses dispatch" default:"50000"`
	AutoResumeThreshold int  `long:"auto-resume-threshold" env:"P2PK_SCANNER_AUTO_RESUME_THRESHOLD" description:"queue depth that resumes dispatch" default:"10000"`
	NoAutoPause         bool `long:"no-auto-pause" env:"P2PK_SCANNER_NO_AUTO_PAUSE" description:"disable queue watermark auto-pause"`

	BatchRPC     bool `long:"batch-rpc" env:"P2PK_SCANNER_BATCH_RPC" description:"fetch previous outputs over batched JSON-RPC"`
	RPCBatchSize int  `long:"rpc-batch-size" env:"P2PK_SCANNER_RPC_BATCH_SIZE" description:"transactions per RPC batch" default:"25"`
	QuickScan    bool `long:"quick-scan" env:"P2PK_SCANNER_QUICK_SCAN" description:"skip blocks without P2PK-shaped outputs (misses input-side exposures)"`

	WorkerProfile bool   `long:"worker-profile" env:"P2PK_SCANNER_WORKER_PROFILE" description:"write a CPU profile of the run"`
	ProfileOutput string `long:"profile-output" env:"P2PK_SCANNER_PROFILE_OUTPUT" description:"CPU profile output path" default:"scanner.pprof"`
	NoConsole     bool   `long:"no-console" env:"P2PK_SCANNER_NO_CONSOLE" description:"disable the interactive stdin console"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("p2pk scanner failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.WorkerProfile {
		profile, err := os.Create(cfg.ProfileOutput)
		if err != nil {
			return fmt.Errorf("create profile output: %w", err)
		}
		defer func() {
			_ = profile.Close()
		}()
		if err := pprof.StartCPUProfile(profile); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	repo, err := repository.NewRepository(ctx, cfg.ClickhouseDSN, metrics.NewClickhouseRepository(cfg.Network))
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	connCfg, err := rpcConnConfig(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return err
	}
	rpc, err := rpcclient.New(connCfg, nil)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpc.Shutdown()
		rpc.WaitForShutdown()
	}()

	rpcMetrics := metrics.NewRPCClient(cfg.Network)
	base := bitcoin.NewSource(obsrpc.NewObservedClient(rpc, rpcMetrics))

	var resolverSource chain.Source = base
	if cfg.BatchRPC {
		batchClient, err := rpcclient.NewBatch(connCfg)
		if err != nil {
			return fmt.Errorf("init batch rpc client: %w", err)
		}
		defer func() {
			batchClient.Shutdown()
			batchClient.WaitForShutdown()
		}()
		resolverSource = bitcoin.NewBatchSource(base, batchClient, cfg.RPCBatchSize, rpcMetrics)
	}

	params, err := detect.ChainParams(model.Network(cfg.Network))
	if err != nil {
		return err
	}

	svc, err := scanner.New(
		scanner.Config{
			ScannerName:         cfg.ScannerName,
			Network:             model.Network(cfg.Network),
			StartHeight:         cfg.StartBlock,
			EndHeight:           cfg.EndBlock,
			Workers:             cfg.Threads,
			TargetDepth:         cfg.TargetDepth,
			QueueSize:           cfg.QueueSize,
			BatchSize:           cfg.BatchSize,
			FlushInterval:       cfg.FlushInterval,
			FlushRPS:            cfg.FlushRPS,
			AutoPause:           !cfg.NoAutoPause,
			AutoPauseThreshold:  cfg.AutoPauseThreshold,
			AutoResumeThreshold: cfg.AutoResumeThreshold,
			QuickScan:           cfg.QuickScan,
			PrimeInputs:         cfg.BatchRPC,
		},
		repo,
		base,
		detect.NewBlockScanner(params),
		func() scanner.PrevOutResolver {
			return bitcoin.NewPrevOutResolver(resolverSource, 0)
		},
		metrics.NewScanner(cfg.Network),
		logger,
	)
	if err != nil {
		return err
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	if !cfg.NoConsole {
		go scanner.NewConsole(os.Stdin, svc.Commands(), logger).Run(ctx)
	}

	_, err = svc.Run(ctx)
	return err
}

func rpcConnConfig(rawURL, user, password string) (*rpcclient.ConnConfig, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}
	return &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
