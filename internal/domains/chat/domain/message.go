package domain

import (
	"errors"
	"time"
)

// ErrorResponse is shown when no reply could be produced.
const ErrorResponse = "I'm sorry, I'm having trouble processing your request right now. Please try again or contact customer support for assistance."

var ErrEmptyMessage = errors.New("chat message is required")

// Message is a shopper's chat input.
type Message struct {
	Text       string
	SessionID  string
	CustomerID string
}

// Reply is the assistant's answer to a Message.
type Reply struct {
	Response         string
	SessionID        string
	Timestamp        time.Time
	Intent           Intent
	Confidence       float64
	SuggestedActions []string
}

// Role identifies who wrote a transcript entry.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleAssistant Role = "assistant"
)

// Entry is one line of a session transcript.
type Entry struct {
	Role   Role      `json:"role"`
	Text   string    `json:"text"`
	Intent Intent    `json:"intent,omitempty"`
	At     time.Time `json:"at"`
}

// NewReply classifies text and builds the canned reply.
func NewReply(text, sessionID string, now time.Time) Reply {
	intent := Classify(text)
	return Reply{
		Response:         Response(intent, text),
		SessionID:        sessionID,
		Timestamp:        now,
		Intent:           intent,
		Confidence:       Confidence,
		SuggestedActions: SuggestedActions(intent),
	}
}

// ErrorReply is the fallback reply used when the assistant failed.
func ErrorReply(sessionID string, now time.Time) Reply {
	return Reply{
		Response:         ErrorResponse,
		SessionID:        sessionID,
		Timestamp:        now,
		Intent:           IntentError,
		Confidence:       0,
		SuggestedActions: SuggestedActions(IntentError),
	}
}
