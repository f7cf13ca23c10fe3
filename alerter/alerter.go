// Package alerter dispatches guardian protocol events (liquidations,
// oracle failures, protocol pauses) to one or more notification sinks.
package alerter

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
)

// Sink is a single notification transport.
type Sink interface {
	LiquidationAlert(ctx context.Context, event LiquidationEvent) error
	OracleFailure(ctx context.Context, event OracleFailureEvent) error
	ProtocolPauseAlert(ctx context.Context, event PauseEvent) error
}

// LiquidationEvent reports a confirmed liquidation. CollateralReceived is
// zero until transaction-receipt parsing lands.
type LiquidationEvent struct {
	PositionOwner      solana.PublicKey
	VaultType          solana.PublicKey
	DebtRepaid         sdkmath.Int
	CollateralReceived sdkmath.Int
	TxSignature        string
	Timestamp          time.Time
}

func (e LiquidationEvent) String() string {
	return fmt.Sprintf(
		"liquidated position of %s in vault %s: repaid %s debt, received %s collateral (tx %s, %s)",
		e.PositionOwner, e.VaultType, e.DebtRepaid, e.CollateralReceived,
		e.TxSignature, e.Timestamp.UTC().Format(time.RFC3339),
	)
}

// OracleFailureEvent reports a price feed that could not be read.
type OracleFailureEvent struct {
	VaultType solana.PublicKey
	Oracle    solana.PublicKey
	Reason    string
	Timestamp time.Time
}

func (e OracleFailureEvent) String() string {
	return fmt.Sprintf(
		"oracle %s for vault %s failed: %s (%s)",
		e.Oracle, e.VaultType, e.Reason, e.Timestamp.UTC().Format(time.RFC3339),
	)
}

// PauseEvent reports a paused vault type.
type PauseEvent struct {
	VaultType solana.PublicKey
	Timestamp time.Time
}

func (e PauseEvent) String() string {
	return fmt.Sprintf(
		"vault %s is paused (%s)",
		e.VaultType, e.Timestamp.UTC().Format(time.RFC3339),
	)
}
