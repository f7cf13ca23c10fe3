package main

import (
	sdkmath "cosmossdk.io/math"

	"github.com/aegis-protocol/go-tools/aegis"
)

const bpsScale = 10_000

// IsLiquidatable reports whether a position's normalized debt strictly
// exceeds its liquidation limit under the given price. Equality is safe.
// Zero-debt positions are always safe.
func IsLiquidatable(position aegis.Position, vaultType aegis.VaultType, price sdkmath.LegacyDec) bool {
	if !position.DebtAmount.IsPositive() {
		return false
	}

	// usd value of deposited collateral
	collateralValue := sdkmath.LegacyNewDecFromInt(position.CollateralAmount).
		Quo(decimalScale(vaultType.CollateralDecimals)).
		Mul(price)

	// usd debt above which liquidation is permitted
	liquidationLimit := collateralValue.
		Mul(sdkmath.LegacyNewDec(int64(vaultType.LiqThresholdBps))).
		Quo(sdkmath.LegacyNewDec(bpsScale))

	normalizedDebt := sdkmath.LegacyNewDecFromInt(position.DebtAmount).
		Quo(decimalScale(vaultType.DebtDecimals))

	return normalizedDebt.GT(liquidationLimit)
}

// RepayAmount returns the partial-liquidation repay amount: half the
// outstanding debt, floored.
func RepayAmount(debtAmount sdkmath.Int) sdkmath.Int {
	return debtAmount.QuoRaw(2)
}

// decimal scales come from the vault type account, never compile-time
// constants -- vault types are free to use different-decimals mints
func decimalScale(decimals uint8) sdkmath.LegacyDec {
	return sdkmath.LegacyNewDec(10).Power(uint64(decimals))
}
