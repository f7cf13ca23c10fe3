package main

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/aegis-protocol/go-tools/aegis"
)

const (
	// top up when the wallet drops below one SOL of fee budget
	fundingLowWaterLamports = solana.LAMPORTS_PER_SOL
	fundingTopUpLamports    = 2 * solana.LAMPORTS_PER_SOL
)

// CheckFunding tops up the guardian wallet when its fee balance runs
// low. Every failure is logged and swallowed: an underfunded wallet
// degrades liquidation throughput, it must not stop monitoring.
func (g *Guardian) CheckFunding(ctx context.Context) {
	defer func() {
		g.mu.Lock()
		g.status.LastFundingCheck = time.Now().UTC()
		g.mu.Unlock()
	}()

	balance, err := g.client.GetBalance(ctx, g.wallet.PublicKey())
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to query guardian wallet balance")
		return
	}

	if balance >= fundingLowWaterLamports {
		g.logger.Debug().Uint64("lamports", balance).Msg("guardian wallet sufficiently funded")
		return
	}

	g.logger.Info().Uint64("lamports", balance).Msg("guardian wallet below low-water mark, requesting top-up")

	signature, err := g.client.RequestAirdrop(ctx, g.wallet.PublicKey(), fundingTopUpLamports)
	if err != nil {
		if aegis.IsRateLimited(err) {
			// faucets don't tolerate tight retry loops; the next hourly
			// check is the retry
			g.logger.Warn().Err(err).Msg("faucet rate limited, deferring top-up to next funding check")
			return
		}
		g.logger.Error().Err(err).Msg("top-up request failed")
		return
	}

	if err := g.client.ConfirmTransaction(ctx, signature); err != nil {
		g.logger.Error().Err(err).Msg("top-up confirmation failed")
		return
	}

	g.logger.Info().Str("tx", signature.String()).Msg("guardian wallet topped up")
}
