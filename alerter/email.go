package alerter

import (
	"context"

	gomail "gopkg.in/gomail.v2"
)

// EmailSink mails alerts to the protocol admin address over SMTP.
type EmailSink struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// Verify interface compliance at compile time
var _ Sink = (*EmailSink)(nil)

func NewEmailSink(host string, port int, username, password, adminEmail string) *EmailSink {
	return &EmailSink{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
		to:     adminEmail,
	}
}

func (s *EmailSink) LiquidationAlert(_ context.Context, event LiquidationEvent) error {
	return s.send("[Aegis] Position liquidated", event.String())
}

func (s *EmailSink) OracleFailure(_ context.Context, event OracleFailureEvent) error {
	return s.send("[Aegis] Oracle failure", event.String())
}

func (s *EmailSink) ProtocolPauseAlert(_ context.Context, event PauseEvent) error {
	return s.send("[Aegis] Vault type paused", event.String())
}

func (s *EmailSink) send(subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", s.to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)
	return s.dialer.DialAndSend(message)
}
