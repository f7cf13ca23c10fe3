package aegis

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Discriminators follow the anchor convention: accounts are prefixed with
// the first eight bytes of sha256("account:<Name>"), instruction data with
// sha256("global:<method>").
var (
	VaultTypeDiscriminator = anchorDiscriminator("account", "VaultType")
	PositionDiscriminator  = anchorDiscriminator("account", "Position")
	LiquidateDiscriminator = anchorDiscriminator("global", "liquidate")
)

func anchorDiscriminator(namespace, name string) [8]byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}

// Position is a single open CDP: one owner's collateral and debt against
// one vault type. Amounts are in the smallest unit of their respective
// tokens.
type Position struct {
	Owner            solana.PublicKey
	VaultType        solana.PublicKey
	CollateralAmount sdkmath.Int
	DebtAmount       sdkmath.Int
}

// VaultType is the risk-parameter set for one collateral asset, fetched
// live from chain each sweep. LiqThresholdBps is the authoritative
// liquidation boundary; LtvBps only caps new borrows.
type VaultType struct {
	Authority          solana.PublicKey
	CollateralMint     solana.PublicKey
	OraclePriceAccount solana.PublicKey
	LtvBps             uint16
	LiqThresholdBps    uint16
	CollateralDecimals uint8
	DebtDecimals       uint8
	Paused             bool
}

// OraclePrice is a decoded price feed reading.
type OraclePrice struct {
	Price       sdkmath.LegacyDec
	PublishedAt time.Time
}

// on-chain borsh layout of a position account, after the discriminator
type positionAccount struct {
	Owner            solana.PublicKey
	VaultType        solana.PublicKey
	CollateralAmount uint64
	DebtAmount       uint64
}

// on-chain layout of the price feed account
type priceAccount struct {
	Mantissa    int64
	Expo        int32
	PublishedAt int64
}

// DecodeVaultType decodes a vault type account's raw data.
func DecodeVaultType(data []byte) (VaultType, error) {
	payload, err := stripDiscriminator(data, VaultTypeDiscriminator, "vault type")
	if err != nil {
		return VaultType{}, err
	}

	var vaultType VaultType
	if err := bin.NewBorshDecoder(payload).Decode(&vaultType); err != nil {
		return VaultType{}, fmt.Errorf("decode vault type account: %w", err)
	}

	return vaultType, nil
}

// DecodePosition decodes a position account's raw data.
func DecodePosition(data []byte) (Position, error) {
	payload, err := stripDiscriminator(data, PositionDiscriminator, "position")
	if err != nil {
		return Position{}, err
	}

	var account positionAccount
	if err := bin.NewBorshDecoder(payload).Decode(&account); err != nil {
		return Position{}, fmt.Errorf("decode position account: %w", err)
	}

	return Position{
		Owner:            account.Owner,
		VaultType:        account.VaultType,
		CollateralAmount: sdkmath.NewIntFromUint64(account.CollateralAmount),
		DebtAmount:       sdkmath.NewIntFromUint64(account.DebtAmount),
	}, nil
}

// DecodeOraclePrice decodes a price feed account. The feed belongs to an
// external oracle program and carries no anchor discriminator. A
// non-positive mantissa marks the feed invalid.
func DecodeOraclePrice(data []byte) (OraclePrice, error) {
	var account priceAccount
	if err := bin.NewBorshDecoder(data).Decode(&account); err != nil {
		return OraclePrice{}, fmt.Errorf("decode price account: %w", err)
	}

	if account.Mantissa <= 0 {
		return OraclePrice{}, fmt.Errorf("price feed reports invalid price %d", account.Mantissa)
	}

	price := sdkmath.LegacyNewDec(account.Mantissa)
	if account.Expo < 0 {
		price = price.Quo(pow10(uint64(-account.Expo)))
	} else {
		price = price.Mul(pow10(uint64(account.Expo)))
	}

	return OraclePrice{
		Price:       price,
		PublishedAt: time.Unix(account.PublishedAt, 0),
	}, nil
}

func pow10(n uint64) sdkmath.LegacyDec {
	return sdkmath.LegacyNewDec(10).Power(n)
}

func stripDiscriminator(data []byte, want [8]byte, kind string) ([]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%s account data too short: %d bytes", kind, len(data))
	}
	if !bytes.Equal(data[:8], want[:]) {
		return nil, fmt.Errorf("account is not a %s account", kind)
	}
	return data[8:], nil
}

// PositionAddress derives the position account address for (owner,
// vaultType) under the given program.
func PositionAddress(programID, owner, vaultType solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(
		[][]byte{[]byte("position"), owner.Bytes(), vaultType.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive position address: %w", err)
	}
	return address, nil
}

type liquidateArgs struct {
	RepayAmount uint64
}

// LiquidateInstructionData builds the instruction payload for a partial
// liquidation repaying repayAmount debt units.
func LiquidateInstructionData(repayAmount uint64) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(LiquidateDiscriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(liquidateArgs{RepayAmount: repayAmount}); err != nil {
		return nil, fmt.Errorf("encode liquidate args: %w", err)
	}
	return buf.Bytes(), nil
}
