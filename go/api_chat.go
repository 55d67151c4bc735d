package returnsserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chatmapper "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/adapters/http/mapper"
	chatports "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/ports"
)

// ChatAPI serves the returns assistant.
type ChatAPI struct {
	service chatports.Service
}

func NewChatAPI(service chatports.Service) ChatAPI {
	return ChatAPI{service: service}
}

// Post /api/chat/message
// Answer a shopper's message
func (api *ChatAPI) SendMessage(c *gin.Context) {
	var payload chatmapper.MessageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	message := chatmapper.ToDomainMessage(payload)
	if customerID, ok := CustomerID(c); ok {
		message.CustomerID = customerID
	}
	reply, err := api.service.Send(c.Request.Context(), message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chatmapper.FromDomainReply(reply))
}

// Delete /api/chat/session/:sessionId
// Forget a chat session
func (api *ChatAPI) ClearSession(c *gin.Context) {
	if err := api.service.ClearSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/chat/health
func (api *ChatAPI) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Returns assistant is running"})
}
