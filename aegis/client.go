package aegis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	// TxConfirmationTimeout is the longest time to wait for a tx confirmation before giving up
	TxConfirmationTimeout      = 90 * time.Second
	TxConfirmationPollInterval = 2 * time.Second
)

// Client wraps the Solana JSON-RPC API with the reads and the single
// write the guardian performs against the Aegis program.
type Client struct {
	rpc          *rpc.Client
	programID    solana.PublicKey
	oracleMaxAge time.Duration
	commitment   rpc.CommitmentType
}

// NewClient returns a Client for the given RPC endpoint and Aegis program
// id. Oracle readings older than oracleMaxAge are treated as stale.
func NewClient(endpoint string, programID solana.PublicKey, oracleMaxAge time.Duration) *Client {
	return &Client{
		rpc:          rpc.New(endpoint),
		programID:    programID,
		oracleMaxAge: oracleMaxAge,
		commitment:   rpc.CommitmentConfirmed,
	}
}

func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// GetBalance returns the native lamport balance of an account.
func (c *Client) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	result, err := c.rpc.GetBalance(ctx, account, c.commitment)
	if err != nil {
		return 0, err
	}
	return result.Value, nil
}

// RequestAirdrop asks the cluster faucet to top up an account. Public
// faucets rate-limit aggressively, see IsRateLimited.
func (c *Client) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error) {
	return c.rpc.RequestAirdrop(ctx, account, lamports, c.commitment)
}

// GetVaultType fetches and decodes a vault type account.
func (c *Client) GetVaultType(ctx context.Context, address solana.PublicKey) (VaultType, error) {
	data, err := c.accountData(ctx, address)
	if err != nil {
		return VaultType{}, fmt.Errorf("fetch vault type %s: %w", address, err)
	}
	return DecodeVaultType(data)
}

// GetPosition fetches and decodes a position account from live chain state.
func (c *Client) GetPosition(ctx context.Context, address solana.PublicKey) (Position, error) {
	data, err := c.accountData(ctx, address)
	if err != nil {
		return Position{}, fmt.Errorf("fetch position %s: %w", address, err)
	}
	return DecodePosition(data)
}

// GetOraclePrice fetches a price feed and returns an error if the feed is
// invalid or older than the client's staleness bound.
func (c *Client) GetOraclePrice(ctx context.Context, address solana.PublicKey) (OraclePrice, error) {
	data, err := c.accountData(ctx, address)
	if err != nil {
		return OraclePrice{}, fmt.Errorf("fetch oracle %s: %w", address, err)
	}

	price, err := DecodeOraclePrice(data)
	if err != nil {
		return OraclePrice{}, fmt.Errorf("oracle %s: %w", address, err)
	}

	if age := time.Since(price.PublishedAt); age > c.oracleMaxAge {
		return OraclePrice{}, fmt.Errorf("oracle %s is stale: published %s ago", address, age.Truncate(time.Second))
	}

	return price, nil
}

func (c *Client) accountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	result, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, err
	}
	if result.Value == nil {
		return nil, fmt.Errorf("account %s not found", address)
	}
	return result.Value.Data.GetBinary(), nil
}

// LiquidationAccounts are the accounts the liquidate instruction touches.
type LiquidationAccounts struct {
	Position  solana.PublicKey
	VaultType solana.PublicKey
	Oracle    solana.PublicKey
}

// SubmitLiquidation builds, signs and broadcasts a liquidation of the
// given position, repaying repayAmount debt units from the liquidator's
// stablecoin balance. The returned signature is broadcast-accepted only;
// callers confirm with ConfirmTransaction.
func (c *Client) SubmitLiquidation(
	ctx context.Context,
	liquidator solana.PrivateKey,
	accounts LiquidationAccounts,
	repayAmount uint64,
) (solana.Signature, error) {
	data, err := LiquidateInstructionData(repayAmount)
	if err != nil {
		return solana.Signature{}, err
	}

	recent, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("fetch blockhash: %w", err)
	}

	instruction := solana.NewInstruction(c.programID, solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Position, true, false),
		solana.NewAccountMeta(accounts.VaultType, false, false),
		solana.NewAccountMeta(accounts.Oracle, false, false),
		solana.NewAccountMeta(liquidator.PublicKey(), true, true),
	}, data)

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		recent.Value.Blockhash,
		solana.TransactionPayer(liquidator.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(liquidator.PublicKey()) {
			return &liquidator
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}

	signature, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	return signature, nil
}

// ConfirmTransaction polls signature status until the transaction reaches
// the client's commitment, fails on chain, or the timeout passes.
func (c *Client) ConfirmTransaction(ctx context.Context, signature solana.Signature) error {
	return pollWithBackoff(ctx, TxConfirmationTimeout, TxConfirmationPollInterval, func() (bool, error) {
		result, err := c.rpc.GetSignatureStatuses(ctx, true, signature)
		if err != nil {
			return false, nil // poll again, node is down/slow
		}
		if result == nil || len(result.Value) == 0 || result.Value[0] == nil {
			return false, nil // poll again, tx not indexed yet
		}

		status := result.Value[0]
		if status.Err != nil {
			return true, fmt.Errorf("transaction %s failed: %v", signature, status.Err)
		}
		switch status.ConfirmationStatus {
		case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
			return true, nil
		}
		return false, nil
	})
}

// pollWithBackoff will call the provided function until either:
// it returns true, it returns an error, the timeout passes.
// It will wait initialInterval after the first call, and double each subsequent call.
func pollWithBackoff(ctx context.Context, timeout, initialInterval time.Duration, pollFunc func() (bool, error)) error {
	const backoffMultiplier = 2
	deadline := time.After(timeout)

	wait := initialInterval
	nextPoll := time.After(0)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("polling timed out after %s", timeout)
		case <-nextPoll:
			shouldStop, err := pollFunc()
			if shouldStop || err != nil {
				return err
			}
			nextPoll = time.After(wait)
			wait = wait * backoffMultiplier
		}
	}
}

// IsRateLimited reports whether an RPC error is a 429-style rate limit
// response, as public faucets return under load.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "rate limit")
}
