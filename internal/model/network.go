// Package model defines domain models for P2PK exposure scanning.
package model

// Network identifies the Bitcoin network a scanner runs against.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)
