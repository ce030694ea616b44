package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, string, any) error {
	f.calls++
	return errors.New("connection closed")
}

func (f *failingPublisher) Close() {}

func TestNewWithoutURLIsNoop(t *testing.T) {
	p, err := New("", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, Noop{}, p)
	assert.NoError(t, p.Publish(context.Background(), SubjectEventsCreated, map[string]int{"n": 1}))
}

func TestEmitLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := &failingPublisher{}

	Emit(context.Background(), zap.New(core), p, SubjectResponsesUpdated, struct{}{})

	assert.Equal(t, 1, p.calls)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "publish failed", entry.Message)
	assert.Equal(t, SubjectResponsesUpdated, entry.ContextMap()["subject"])

	Emit(context.Background(), zap.New(core), nil, SubjectResponsesUpdated, struct{}{})
	assert.Equal(t, 1, logs.Len())
}
