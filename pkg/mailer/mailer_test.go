package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewPicksTransport(t *testing.T) {
	assert.IsType(t, &Log{}, New("", 587, "", "", "no-reply@squadup.local", zap.NewNop()))
	assert.IsType(t, &SMTP{}, New("smtp.example.com", 587, "user", "pass", "no-reply@squadup.local", zap.NewNop()))
}

func TestLogMailerNeverFails(t *testing.T) {
	assert.NoError(t, NewLog(zap.NewNop()).Send(context.Background(), "coach@example.com", "Invite", "<p>hi</p>"))
}
