package scanner

import "time"

const (
	DefaultScannerName         = "p2pk_scanner"
	DefaultWorkers             = 8
	DefaultTargetDepth         = 4
	DefaultQueueSize           = 100_000
	DefaultBatchSize           = 1_000
	DefaultFlushInterval       = 2 * time.Second
	DefaultAutoPauseThreshold  = 50_000
	DefaultAutoResumeThreshold = 10_000
	DefaultAutoPauseInterval   = 250 * time.Millisecond
	DefaultMaxRetries          = 3
	DefaultRetryBaseDelay      = 500 * time.Millisecond
	DefaultRetryMaxDelay       = 10 * time.Second
	DefaultFollowInterval      = 30 * time.Second
	DefaultProgressInterval    = 10 * time.Second
)
