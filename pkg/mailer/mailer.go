package mailer

import (
	"context"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTP delivers mail through a gomail dialer.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, "SquadUp"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

// Log only records the message. Used when SMTP is not configured.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Send(_ context.Context, to, subject, _ string) error {
	l.log.Info("mail not sent, smtp disabled", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// New picks SMTP when host is set.
func New(host string, port int, username, password, from string, log *zap.Logger) Mailer {
	if host == "" {
		return NewLog(log)
	}
	return NewSMTP(host, port, username, password, from)
}
