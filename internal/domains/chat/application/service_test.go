package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/adapters/memory"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
)

type failingStore struct{ memory.TranscriptStore }

func (*failingStore) Append(context.Context, string, ...domain.Entry) error {
	return errors.New("store down")
}

func TestSend_NewSessionAndTranscript(t *testing.T) {
	store := memory.NewTranscriptStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(store, WithClock(func() time.Time { return now }), WithSessionIDs(func() string { return "session-1" }))

	reply, err := svc.Send(context.Background(), domain.Message{Text: "  How do I start a return? "})
	require.NoError(t, err)
	assert.Equal(t, "session-1", reply.SessionID)
	assert.Equal(t, domain.IntentReturnHelp, reply.Intent)
	assert.Equal(t, domain.Confidence, reply.Confidence)
	assert.Equal(t, now, reply.Timestamp)

	entries, err := store.Transcript(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.RoleCustomer, entries[0].Role)
	assert.Equal(t, "How do I start a return?", entries[0].Text)
	assert.Equal(t, reply.Response, entries[1].Text)
}

func TestSend_KeepsExistingSession(t *testing.T) {
	svc := NewService(memory.NewTranscriptStore())
	reply, err := svc.Send(context.Background(), domain.Message{Text: "hello", SessionID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", reply.SessionID)
}

func TestSend_GeneratesUUIDSessions(t *testing.T) {
	svc := NewService(nil)
	a, err := svc.Send(context.Background(), domain.Message{Text: "hello"})
	require.NoError(t, err)
	b, err := svc.Send(context.Background(), domain.Message{Text: "hello"})
	require.NoError(t, err)
	assert.Len(t, a.SessionID, 36)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestSend_EmptyMessage(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Send(context.Background(), domain.Message{Text: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestSend_StoreFailure(t *testing.T) {
	svc := NewService(&failingStore{})
	_, err := svc.Send(context.Background(), domain.Message{Text: "hello"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestClearSession(t *testing.T) {
	store := memory.NewTranscriptStore()
	svc := NewService(store)
	_, err := svc.Send(context.Background(), domain.Message{Text: "hello", SessionID: "abc"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearSession(context.Background(), "abc"))
	entries, err := store.Transcript(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, svc.ClearSession(context.Background(), "unknown"))
	require.NoError(t, NewService(nil).ClearSession(context.Background(), "abc"))
}
