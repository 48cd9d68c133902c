package services

import (
	"context"

	"github.com/dmitrijs2005/jablog/internal/logging"
)

// Mailer delivers account emails.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	m.logger.Info(ctx, "password reset requested", "to", to, "link", link)
	return nil
}
