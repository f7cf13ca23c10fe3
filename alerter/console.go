package alerter

import (
	"context"

	"github.com/rs/zerolog"
)

// ConsoleSink writes alerts to the process log. Always enabled.
type ConsoleSink struct {
	logger zerolog.Logger
}

// Verify interface compliance at compile time
var _ Sink = (*ConsoleSink)(nil)

func NewConsoleSink(logger zerolog.Logger) *ConsoleSink {
	return &ConsoleSink{logger: logger}
}

func (c *ConsoleSink) LiquidationAlert(_ context.Context, event LiquidationEvent) error {
	c.logger.Info().
		Str("owner", event.PositionOwner.String()).
		Str("vault_type", event.VaultType.String()).
		Str("debt_repaid", event.DebtRepaid.String()).
		Str("collateral_received", event.CollateralReceived.String()).
		Str("tx", event.TxSignature).
		Msg("position liquidated")
	return nil
}

func (c *ConsoleSink) OracleFailure(_ context.Context, event OracleFailureEvent) error {
	c.logger.Warn().
		Str("vault_type", event.VaultType.String()).
		Str("oracle", event.Oracle.String()).
		Str("reason", event.Reason).
		Msg("oracle failure")
	return nil
}

func (c *ConsoleSink) ProtocolPauseAlert(_ context.Context, event PauseEvent) error {
	c.logger.Warn().
		Str("vault_type", event.VaultType.String()).
		Msg("vault type paused")
	return nil
}
