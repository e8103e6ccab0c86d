package api

import (
	"net/http"

	"medagent/backend/internal/service"
	"medagent/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ChatRequest is one user turn.
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatController handles the conversational endpoints: welcome,
// message turns and transcript retrieval.
type ChatController struct {
	chat     *service.ChatService
	sessions *service.SessionService
}

// NewChatController creates a new chat controller
func NewChatController(chat *service.ChatService, sessions *service.SessionService) *ChatController {
	return &ChatController{chat: chat, sessions: sessions}
}

// RegisterRoutes registers the chat routes on the chat group
func (c *ChatController) RegisterRoutes(chat *gin.RouterGroup) {
	chat.POST("/welcome/:sessionId", c.Welcome)
	chat.POST("/message", c.SendMessage)
	chat.GET("/history/:sessionId", c.GetHistory)
}

// Welcome generates the opening assistant message for a session
func (c *ChatController) Welcome(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	result, err := c.chat.Welcome(ctx.Request.Context(), sessionID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// SendMessage processes one user turn through the triage pipeline
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(errors.NewBadRequestError("INVALID_REQUEST", "session_id and message are required").
			WithDetails(err.Error()))
		return
	}

	result, err := c.chat.ProcessMessage(ctx.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetHistory returns the full transcript in timestamp order
func (c *ChatController) GetHistory(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	messages, err := c.sessions.History(ctx.Request.Context(), sessionID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}
