package main

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/aegis-protocol/go-tools/aegis"
	"github.com/aegis-protocol/go-tools/alerter"
)

// liquidatePosition submits a partial liquidation for a position already
// evaluated as unhealthy, waits for confirmation, and dispatches the
// resulting notification.
func (g *Guardian) liquidatePosition(
	ctx context.Context,
	position aegis.Position,
	vaultType aegis.VaultType,
	price aegis.OraclePrice,
) (bool, error) {
	// repay half of the outstanding debt, pinned to the cached snapshot
	// the decision was made against
	repayAmount := RepayAmount(position.DebtAmount)

	positionAddress, err := aegis.PositionAddress(g.programId, position.Owner, position.VaultType)
	if err != nil {
		return false, err
	}

	// the cache may lag the chain by an indexer cycle; re-check live
	// state so a position repaid since the last refresh is not targeted
	live, err := g.client.GetPosition(ctx, positionAddress)
	if err != nil {
		g.logger.Warn().Err(err).
			Str("owner", position.Owner.String()).
			Msg("live position re-check failed, proceeding with cached state")
	} else if !IsLiquidatable(live, vaultType, price.Price) {
		g.logger.Info().
			Str("owner", position.Owner.String()).
			Msg("position healthy on chain, skipping liquidation")
		return false, nil
	}

	g.logger.Info().
		Str("owner", position.Owner.String()).
		Str("repay_amount", repayAmount.String()).
		Msg("sending liquidation")

	signature, err := g.client.SubmitLiquidation(ctx, g.wallet, aegis.LiquidationAccounts{
		Position:  positionAddress,
		VaultType: position.VaultType,
		Oracle:    vaultType.OraclePriceAccount,
	}, repayAmount.Uint64())
	if err != nil {
		return false, fmt.Errorf("submit liquidation: %w", err)
	}

	if err := g.client.ConfirmTransaction(ctx, signature); err != nil {
		return false, fmt.Errorf("confirm liquidation: %w", err)
	}

	event := alerter.LiquidationEvent{
		PositionOwner:      position.Owner,
		VaultType:          position.VaultType,
		DebtRepaid:         repayAmount,
		CollateralReceived: sdkmath.ZeroInt(), // needs tx receipt parsing
		TxSignature:        signature.String(),
		Timestamp:          time.Now().UTC(),
	}
	if err := g.sink.LiquidationAlert(ctx, event); err != nil {
		// alert delivery is best effort
		g.logger.Warn().Err(err).Msg("liquidation alert partially failed")
	}

	return true, nil
}
