package alerter

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Composite fans an event out to all configured sinks concurrently. A
// failing sink is logged and never blocks delivery to the others.
type Composite struct {
	sinks  []Sink
	logger zerolog.Logger
}

// Verify interface compliance at compile time
var _ Sink = (*Composite)(nil)

func NewComposite(logger zerolog.Logger, sinks ...Sink) *Composite {
	return &Composite{
		sinks:  sinks,
		logger: logger,
	}
}

func (c *Composite) LiquidationAlert(ctx context.Context, event LiquidationEvent) error {
	return c.dispatch("liquidation", func(s Sink) error { return s.LiquidationAlert(ctx, event) })
}

func (c *Composite) OracleFailure(ctx context.Context, event OracleFailureEvent) error {
	return c.dispatch("oracle failure", func(s Sink) error { return s.OracleFailure(ctx, event) })
}

func (c *Composite) ProtocolPauseAlert(ctx context.Context, event PauseEvent) error {
	return c.dispatch("protocol pause", func(s Sink) error { return s.ProtocolPauseAlert(ctx, event) })
}

func (c *Composite) dispatch(kind string, send func(Sink) error) error {
	var group errgroup.Group
	for _, sink := range c.sinks {
		sink := sink
		group.Go(func() error {
			if err := send(sink); err != nil {
				c.logger.Error().Err(err).Str("alert", kind).Msg("notification sink failed")
				return err
			}
			return nil
		})
	}
	// first sink error, after every sink has been invoked
	return group.Wait()
}
