package main

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/aegis-protocol/go-tools/aegis"
	"github.com/aegis-protocol/go-tools/positions"
)

// LiquidationClient is the chain surface the guardian depends on:
// protocol and oracle reads, faucet funding, and liquidation submission.
type LiquidationClient interface {
	GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
	RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error)
	GetVaultType(ctx context.Context, address solana.PublicKey) (aegis.VaultType, error)
	GetPosition(ctx context.Context, address solana.PublicKey) (aegis.Position, error)
	GetOraclePrice(ctx context.Context, address solana.PublicKey) (aegis.OraclePrice, error)
	SubmitLiquidation(ctx context.Context, liquidator solana.PrivateKey, accounts aegis.LiquidationAccounts, repayAmount uint64) (solana.Signature, error)
	ConfirmTransaction(ctx context.Context, signature solana.Signature) error
}

var _ LiquidationClient = (*aegis.Client)(nil)

// PositionSource reads the indexer-maintained position cache.
type PositionSource interface {
	AllPositions(ctx context.Context) ([]aegis.Position, error)
}

var _ PositionSource = (*positions.Store)(nil)
