package portal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
	chatdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
)

const (
	greetingMessage  = "Hello"
	fallbackGreeting = "Hello! I'm here to help you with your returns. How can I assist you today?"
)

var fallbackActions = []string{"Start a Return", "Track Return", "View Orders"}

// Bubble is one rendered chat message.
type Bubble struct {
	Text             string
	FromCustomer     bool
	At               time.Time
	SuggestedActions []string
}

// ChatWidget is the floating assistant. It keeps the server session id
// handed out by the first reply and sends it with every later message.
type ChatWidget struct {
	client  ChatClient
	session *rma.Session
	guard   *inflight
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	open      bool
	sessionID string
	bubbles   []Bubble
}

// NewChatWidget builds a widget. session may be nil for anonymous shoppers.
func NewChatWidget(client ChatClient, session *rma.Session, opts ...Option) *ChatWidget {
	o := newOptions(opts)
	return &ChatWidget{client: client, session: session, guard: newInflight(), logger: o.logger, now: o.now}
}

// Open shows the widget and greets the shopper once per empty transcript.
func (w *ChatWidget) Open(ctx context.Context) error {
	w.mu.Lock()
	w.open = true
	empty := len(w.bubbles) == 0
	w.mu.Unlock()
	if !empty {
		return nil
	}
	return w.greet(ctx)
}

// Hide collapses the widget and keeps the transcript.
func (w *ChatWidget) Hide() {
	w.mu.Lock()
	w.open = false
	w.mu.Unlock()
}

func (w *ChatWidget) greet(ctx context.Context) error {
	_, err := fetch(ctx, w.guard, func(ctx context.Context) (*rma.ChatReply, error) {
		return w.client.SendChat(ctx, w.message(greetingMessage))
	}, func(reply *rma.ChatReply, err error) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if err != nil {
			w.logger.WarnContext(ctx, "chat greeting failed", slog.String("error", err.Error()))
			w.bubbles = []Bubble{{Text: fallbackGreeting, At: w.now(), SuggestedActions: fallbackActions}}
			return
		}
		w.sessionID = reply.SessionID
		w.bubbles = []Bubble{replyBubble(*reply, w.now())}
	})
	if errors.Is(err, ErrBusy) || errors.Is(err, ErrClosed) {
		return err
	}
	return nil
}

// Send posts text and appends both sides of the exchange. A failed call
// renders the assistant's error reply instead of surfacing the cause.
func (w *ChatWidget) Send(ctx context.Context, text string) (*Bubble, error) {
	if strings.TrimSpace(text) == "" {
		return nil, chatdomain.ErrEmptyMessage
	}
	ctx, done, err := w.guard.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	w.mu.Lock()
	w.bubbles = append(w.bubbles, Bubble{Text: text, FromCustomer: true, At: w.now()})
	w.mu.Unlock()

	reply, err := w.client.SendChat(ctx, w.message(text))
	var bubble Bubble
	commitErr := w.guard.commit(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if err != nil {
			w.logger.WarnContext(ctx, "chat message failed", slog.String("error", err.Error()))
			fallback := chatdomain.ErrorReply(w.sessionID, w.now())
			bubble = Bubble{Text: fallback.Response, At: fallback.Timestamp, SuggestedActions: fallback.SuggestedActions}
		} else {
			if reply.SessionID != "" {
				w.sessionID = reply.SessionID
			}
			bubble = replyBubble(*reply, w.now())
		}
		w.bubbles = append(w.bubbles, bubble)
	})
	if commitErr != nil {
		return nil, commitErr
	}
	return &bubble, nil
}

// Clear drops the server session and the transcript, then greets again if
// the widget is open.
func (w *ChatWidget) Clear(ctx context.Context) error {
	if w.guard.Busy() {
		return ErrBusy
	}
	w.mu.Lock()
	sessionID := w.sessionID
	w.sessionID = ""
	w.bubbles = nil
	open := w.open
	w.mu.Unlock()
	if sessionID != "" {
		if err := w.client.ClearChat(ctx, sessionID); err != nil {
			w.logger.WarnContext(ctx, "clearing chat session failed", slog.String("sessionId", sessionID), slog.String("error", err.Error()))
		}
	}
	if open {
		return w.greet(ctx)
	}
	return nil
}

func (w *ChatWidget) message(text string) rma.ChatMessage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	msg := rma.ChatMessage{Message: text, SessionID: w.sessionID}
	if w.session != nil {
		msg.CustomerID = w.session.CustomerID
	}
	return msg
}

func replyBubble(reply rma.ChatReply, now time.Time) Bubble {
	at := reply.Timestamp
	if at.IsZero() {
		at = now
	}
	return Bubble{Text: reply.Response, At: at, SuggestedActions: reply.SuggestedActions}
}

// Bubbles returns a copy of the transcript.
func (w *ChatWidget) Bubbles() []Bubble {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Bubble(nil), w.bubbles...)
}

// SessionID is the server chat session, empty until the first reply.
func (w *ChatWidget) SessionID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sessionID
}

// IsOpen reports whether the widget is expanded.
func (w *ChatWidget) IsOpen() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.open
}

// Busy reports whether a message is outstanding.
func (w *ChatWidget) Busy() bool { return w.guard.Busy() }

// Close cancels an outstanding message and drops its reply.
func (w *ChatWidget) Close() { w.guard.Close() }
