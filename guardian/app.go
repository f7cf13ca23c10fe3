package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/aegis-protocol/go-tools/aegis"
	"github.com/aegis-protocol/go-tools/alerter"
	"github.com/aegis-protocol/go-tools/server"
)

// Guardian monitors cached positions against live oracle prices and
// liquidates the unhealthy ones.
type Guardian struct {
	client    LiquidationClient
	positions PositionSource
	sink      alerter.Sink
	wallet    solana.PrivateKey
	programId solana.PublicKey
	logger    zerolog.Logger

	mu     sync.Mutex
	status server.Status
}

func NewGuardian(
	client LiquidationClient,
	positions PositionSource,
	sink alerter.Sink,
	wallet solana.PrivateKey,
	programId solana.PublicKey,
	logger zerolog.Logger,
) *Guardian {
	return &Guardian{
		client:    client,
		positions: positions,
		sink:      sink,
		wallet:    wallet,
		programId: programId,
		logger:    logger,
		status:    server.Status{Wallet: wallet.PublicKey().String()},
	}
}

// Status implements server.StatusProvider.
func (g *Guardian) Status() server.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// RunSweep evaluates every cached position once. A per-position failure
// is logged with the owner and never aborts the sweep; a cache read
// failure abandons this sweep only, the schedule stays intact.
func (g *Guardian) RunSweep(ctx context.Context) {
	cached, err := g.positions.AllPositions(ctx)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to fetch position cache, abandoning sweep")
		return
	}

	liquidated := 0
	for _, position := range cached {
		ok, err := g.processPosition(ctx, position)
		if err != nil {
			g.logger.Error().Err(err).
				Str("owner", position.Owner.String()).
				Msg("failed to process position")
			continue
		}
		if ok {
			liquidated++
		}
	}

	g.logger.Info().
		Int("positions", len(cached)).
		Int("liquidated", liquidated).
		Msg("sweep complete")

	g.mu.Lock()
	g.status.LastSweep = time.Now().UTC()
	g.status.SweepCount++
	g.status.LiquidationCount += uint64(liquidated)
	g.mu.Unlock()
}

// processPosition fetches fresh vault config and oracle price for one
// position and liquidates it if unhealthy. Config and price are fetched
// per position, never reused across the sweep, so a liquidation decision
// always pairs a snapshot with a same-iteration price. Returns whether a
// liquidation was confirmed.
func (g *Guardian) processPosition(ctx context.Context, position aegis.Position) (bool, error) {
	// zero-debt positions are inert
	if position.DebtAmount.IsZero() {
		return false, nil
	}

	vaultType, err := g.client.GetVaultType(ctx, position.VaultType)
	if err != nil {
		return false, fmt.Errorf("fetch vault type: %w", err)
	}

	if vaultType.Paused {
		g.logger.Debug().
			Str("owner", position.Owner.String()).
			Str("vault_type", position.VaultType.String()).
			Msg("vault type paused, skipping")
		return false, nil
	}

	// a failed or stale oracle must never trigger a liquidation
	price, err := g.client.GetOraclePrice(ctx, vaultType.OraclePriceAccount)
	if err != nil {
		g.logger.Warn().Err(err).
			Str("owner", position.Owner.String()).
			Str("vault_type", position.VaultType.String()).
			Msg("oracle unavailable, skipping position this sweep")
		return false, nil
	}

	if !IsLiquidatable(position, vaultType, price.Price) {
		return false, nil
	}

	return g.liquidatePosition(ctx, position, vaultType, price)
}
