package main

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"

	"github.com/aegis-protocol/go-tools/aegis"
)

func testVaultType() aegis.VaultType {
	return aegis.VaultType{
		OraclePriceAccount: solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111"),
		LtvBps:             6000,
		LiqThresholdBps:    8000,
		CollateralDecimals: 9,
		DebtDecimals:       6,
	}
}

func testPosition(collateral, debt int64) aegis.Position {
	return aegis.Position{
		CollateralAmount: sdkmath.NewInt(collateral),
		DebtAmount:       sdkmath.NewInt(debt),
	}
}

func TestIsLiquidatableUnderLimit(t *testing.T) {
	// 10 units of collateral at $20 = $200 value, 80% threshold = $160
	// limit; $150 of debt is safe
	position := testPosition(10_000_000_000, 150_000_000)
	price := sdkmath.LegacyMustNewDecFromStr("20.0")

	assert.False(t, IsLiquidatable(position, testVaultType(), price))
}

func TestIsLiquidatableOverLimit(t *testing.T) {
	// $170 of debt against a $160 limit
	position := testPosition(10_000_000_000, 170_000_000)
	price := sdkmath.LegacyMustNewDecFromStr("20.0")

	assert.True(t, IsLiquidatable(position, testVaultType(), price))
}

func TestIsLiquidatableBoundaryIsSafe(t *testing.T) {
	// debt exactly at the limit classifies safe, only a strict excess
	// permits liquidation
	position := testPosition(10_000_000_000, 160_000_000)
	price := sdkmath.LegacyMustNewDecFromStr("20.0")

	assert.False(t, IsLiquidatable(position, testVaultType(), price))

	position.DebtAmount = sdkmath.NewInt(160_000_001)
	assert.True(t, IsLiquidatable(position, testVaultType(), price))
}

func TestIsLiquidatableZeroDebtAlwaysSafe(t *testing.T) {
	prices := []string{"0.000001", "1.0", "20.0", "100000.0"}

	for _, raw := range prices {
		price := sdkmath.LegacyMustNewDecFromStr(raw)
		assert.False(t, IsLiquidatable(testPosition(1_000_000_000_000, 0), testVaultType(), price))
		assert.False(t, IsLiquidatable(testPosition(0, 0), testVaultType(), price))
	}
}

func TestIsLiquidatableZeroCollateral(t *testing.T) {
	// any positive debt with no collateral is over the limit
	position := testPosition(0, 1)
	price := sdkmath.LegacyMustNewDecFromStr("20.0")

	assert.True(t, IsLiquidatable(position, testVaultType(), price))
}

func TestIsLiquidatableUsesVaultDecimals(t *testing.T) {
	// same raw amounts flip classification when the vault's collateral
	// mint uses fewer decimals
	position := testPosition(10_000_000_000, 170_000_000)
	price := sdkmath.LegacyMustNewDecFromStr("20.0")

	vaultType := testVaultType()
	vaultType.CollateralDecimals = 6 // 10,000 units of collateral now
	assert.False(t, IsLiquidatable(position, vaultType, price))
}

func TestRepayAmountIsHalfTheDebt(t *testing.T) {
	assert.Equal(t, sdkmath.NewInt(85_000_000), RepayAmount(sdkmath.NewInt(170_000_000)))
	assert.Equal(t, sdkmath.NewInt(0), RepayAmount(sdkmath.NewInt(1)))
	// floored, never rounded up
	assert.Equal(t, sdkmath.NewInt(2), RepayAmount(sdkmath.NewInt(5)))
}
