package alerter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu           sync.Mutex
	Liquidations []LiquidationEvent
	Oracles      []OracleFailureEvent
	Pauses       []PauseEvent
	Err          error
}

func (s *recordingSink) LiquidationAlert(ctx context.Context, event LiquidationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Liquidations = append(s.Liquidations, event)
	return s.Err
}

func (s *recordingSink) OracleFailure(ctx context.Context, event OracleFailureEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Oracles = append(s.Oracles, event)
	return s.Err
}

func (s *recordingSink) ProtocolPauseAlert(ctx context.Context, event PauseEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pauses = append(s.Pauses, event)
	return s.Err
}

func testLiquidationEvent() LiquidationEvent {
	return LiquidationEvent{
		PositionOwner:      solana.NewWallet().PublicKey(),
		VaultType:          solana.NewWallet().PublicKey(),
		DebtRepaid:         sdkmath.NewInt(85_000_000),
		CollateralReceived: sdkmath.ZeroInt(),
		TxSignature:        "5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7",
		Timestamp:          time.Now(),
	}
}

func TestCompositeDeliversToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	composite := NewComposite(zerolog.Nop(), first, second)

	event := testLiquidationEvent()
	require.NoError(t, composite.LiquidationAlert(context.Background(), event))

	require.Len(t, first.Liquidations, 1)
	require.Len(t, second.Liquidations, 1)
	assert.Equal(t, event.PositionOwner, first.Liquidations[0].PositionOwner)
}

func TestCompositeFailingSinkDoesNotBlockOthers(t *testing.T) {
	failing := &recordingSink{Err: errors.New("webhook returned 500")}
	healthy := &recordingSink{}
	composite := NewComposite(zerolog.Nop(), failing, healthy)

	err := composite.LiquidationAlert(context.Background(), testLiquidationEvent())

	// the failure surfaces, but only after every sink was invoked
	assert.Error(t, err)
	assert.Len(t, failing.Liquidations, 1)
	assert.Len(t, healthy.Liquidations, 1)
}

func TestCompositeDispatchesAllEventKinds(t *testing.T) {
	sink := &recordingSink{}
	composite := NewComposite(zerolog.Nop(), sink)
	ctx := context.Background()

	require.NoError(t, composite.LiquidationAlert(ctx, testLiquidationEvent()))
	require.NoError(t, composite.OracleFailure(ctx, OracleFailureEvent{
		VaultType: solana.NewWallet().PublicKey(),
		Oracle:    solana.NewWallet().PublicKey(),
		Reason:    "price feed reports invalid price -1",
		Timestamp: time.Now(),
	}))
	require.NoError(t, composite.ProtocolPauseAlert(ctx, PauseEvent{
		VaultType: solana.NewWallet().PublicKey(),
		Timestamp: time.Now(),
	}))

	assert.Len(t, sink.Liquidations, 1)
	assert.Len(t, sink.Oracles, 1)
	assert.Len(t, sink.Pauses, 1)
}

func TestCompositeWithNoSinksIsANoop(t *testing.T) {
	composite := NewComposite(zerolog.Nop())
	assert.NoError(t, composite.LiquidationAlert(context.Background(), testLiquidationEvent()))
}
