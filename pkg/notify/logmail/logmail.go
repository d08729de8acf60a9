// Package logmail writes outgoing mail to the log instead of sending it.
// Development only: the body carries the verification code.
package logmail

import (
	"context"

	"github.com/artem13815/fintrack/pkg/logging"
)

type Sender struct {
	log logging.Logger
}

func New(log logging.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	s.log.Info(ctx, "outgoing email", "to", to, "subject", subject, "body", body)
	return nil
}
