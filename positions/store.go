// Package positions reads the position cache the indexer maintains in
// PostgreSQL. The guardian never writes to this table.
package positions

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aegis-protocol/go-tools/aegis"
)

// Store reads cached positions from the indexer's database.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the indexer database and verifies the connection.
func NewStore(ctx context.Context, databaseUrl string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseUrl)
	if err != nil {
		return nil, fmt.Errorf("positions: parse database url: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("positions: ping: %w", err)
	}

	return &Store{pool: pool}, nil
}

// AllPositions returns every cached position in insertion order. The
// cache holds inert zero-balance positions too; callers filter.
func (s *Store) AllPositions(ctx context.Context) ([]aegis.Position, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT owner, vault_type, collateral_amount, debt_amount
		FROM positions
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("positions: query: %w", err)
	}
	defer rows.Close()

	var result []aegis.Position
	for rows.Next() {
		var owner, vaultType, collateral, debt string
		if err := rows.Scan(&owner, &vaultType, &collateral, &debt); err != nil {
			return nil, fmt.Errorf("positions: scan: %w", err)
		}

		position, err := parsePosition(owner, vaultType, collateral, debt)
		if err != nil {
			return nil, err
		}
		result = append(result, position)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("positions: iterate: %w", err)
	}

	return result, nil
}

func parsePosition(owner, vaultType, collateral, debt string) (aegis.Position, error) {
	ownerKey, err := solana.PublicKeyFromBase58(owner)
	if err != nil {
		return aegis.Position{}, fmt.Errorf("positions: owner %q: %w", owner, err)
	}
	vaultTypeKey, err := solana.PublicKeyFromBase58(vaultType)
	if err != nil {
		return aegis.Position{}, fmt.Errorf("positions: vault type %q: %w", vaultType, err)
	}
	collateralAmount, ok := sdkmath.NewIntFromString(collateral)
	if !ok {
		return aegis.Position{}, fmt.Errorf("positions: invalid collateral amount %q for %s", collateral, owner)
	}
	debtAmount, ok := sdkmath.NewIntFromString(debt)
	if !ok {
		return aegis.Position{}, fmt.Errorf("positions: invalid debt amount %q for %s", debt, owner)
	}

	return aegis.Position{
		Owner:            ownerKey,
		VaultType:        vaultTypeKey,
		CollateralAmount: collateralAmount,
		DebtAmount:       debtAmount,
	}, nil
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
