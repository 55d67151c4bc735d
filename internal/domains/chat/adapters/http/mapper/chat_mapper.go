package mapper

import (
	"time"

	chatdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
)

// MessageRequest is the body of POST /api/chat/message.
type MessageRequest struct {
	Message    string `json:"message" binding:"required,max=2000"`
	SessionID  string `json:"sessionId,omitempty" binding:"max=64"`
	CustomerID string `json:"customerId,omitempty"`
}

// Reply is the chat response body.
type Reply struct {
	Response         string    `json:"response"`
	SessionID        string    `json:"sessionId"`
	Timestamp        time.Time `json:"timestamp"`
	Intent           string    `json:"intent"`
	Confidence       float64   `json:"confidence"`
	SuggestedActions []string  `json:"suggestedActions"`
}

// ToDomainMessage converts the request body to a domain message.
func ToDomainMessage(req MessageRequest) chatdomain.Message {
	return chatdomain.Message{Text: req.Message, SessionID: req.SessionID, CustomerID: req.CustomerID}
}

// FromDomainReply converts a domain reply to its JSON shape.
func FromDomainReply(reply *chatdomain.Reply) Reply {
	if reply == nil {
		return Reply{}
	}
	actions := reply.SuggestedActions
	if actions == nil {
		actions = []string{}
	}
	return Reply{
		Response:         reply.Response,
		SessionID:        reply.SessionID,
		Timestamp:        reply.Timestamp,
		Intent:           string(reply.Intent),
		Confidence:       reply.Confidence,
		SuggestedActions: actions,
	}
}
