// Package notify publishes domain events after their transaction commits.
package notify

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectEventsCreated    = "squadup.events.created"
	SubjectInvitesAccepted  = "squadup.invites.accepted"
	SubjectResponsesUpdated = "squadup.responses.updated"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
	Close()
}

// Noop discards every message. Used when NATS is not configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close()                                     {}

// NATS publishes JSON payloads on a core NATS connection.
type NATS struct {
	conn *nats.Conn
}

// NewNATS connects to url.
func NewNATS(url string, opts ...nats.Option) (*NATS, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &NATS{conn: nc}, nil
}

func (n *NATS) Publish(ctx context.Context, subject string, v any) error {
	if n == nil {
		return errors.New("nil publisher")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return n.conn.Publish(subject, data)
}

// Close drains pending messages before closing.
func (n *NATS) Close() {
	if n == nil {
		return
	}
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
	}
}

// New returns a NATS publisher when url is set and Noop otherwise.
func New(url string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		return Noop{}, nil
	}
	p, err := NewNATS(url, nats.Name("squadup"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, err
	}
	log.Info("nats publisher connected", zap.String("url", url))
	return p, nil
}

// Emit publishes v and logs a failure instead of returning it.
func Emit(ctx context.Context, log *zap.Logger, p Publisher, subject string, v any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, subject, v); err != nil {
		log.Warn("publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
