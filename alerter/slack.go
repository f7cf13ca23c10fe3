package alerter

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackSink posts alerts to a Slack webhook.
type SlackSink struct {
	webhookUrl string
}

// Verify interface compliance at compile time
var _ Sink = (*SlackSink)(nil)

// NewSlackSink returns a new SlackSink that posts messages to a specific webhook
func NewSlackSink(webhookUrl string) *SlackSink {
	return &SlackSink{webhookUrl: webhookUrl}
}

func (s *SlackSink) LiquidationAlert(ctx context.Context, event LiquidationEvent) error {
	return s.post(ctx, ":rotating_light: [LIQUIDATION] "+event.String())
}

func (s *SlackSink) OracleFailure(ctx context.Context, event OracleFailureEvent) error {
	return s.post(ctx, ":warning: [ORACLE] "+event.String())
}

func (s *SlackSink) ProtocolPauseAlert(ctx context.Context, event PauseEvent) error {
	return s.post(ctx, ":double_vertical_bar: [PAUSE] "+event.String())
}

func (s *SlackSink) post(ctx context.Context, text string) error {
	return slack.PostWebhookContext(ctx, s.webhookUrl, &slack.WebhookMessage{Text: text})
}
