package api

import (
	"net/http"

	"medagent/backend/internal/service"
	"medagent/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SessionController handles session lifecycle endpoints.
type SessionController struct {
	sessions *service.SessionService
}

// NewSessionController creates a new session controller
func NewSessionController(sessions *service.SessionService) *SessionController {
	return &SessionController{sessions: sessions}
}

// RegisterRoutes registers the session routes on the chat group
func (c *SessionController) RegisterRoutes(chat *gin.RouterGroup) {
	chat.POST("/session", c.CreateSession)
	chat.GET("/session/:sessionId", c.GetSession)
	chat.GET("/summary/:sessionId", c.GetSummary)
	chat.POST("/close/:sessionId", c.CloseSession)
}

// CreateSession starts a new triage session
func (c *SessionController) CreateSession(ctx *gin.Context) {
	session, err := c.sessions.Create(ctx.Request.Context())
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"status":     "created",
	})
}

// GetSession returns a session together with its profile, if any
func (c *SessionController) GetSession(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")
	if sessionID == "" {
		ctx.Error(errors.NewBadRequestError("INVALID_REQUEST", "Session ID is required"))
		return
	}

	session, profile, err := c.sessions.Get(ctx.Request.Context(), sessionID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"session": session,
		"profile": profile,
	})
}

// GetSummary returns the reporting view of a session
func (c *SessionController) GetSummary(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	summary, err := c.sessions.Summary(ctx.Request.Context(), sessionID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// CloseSession closes a session. Closing twice is not an error.
func (c *SessionController) CloseSession(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	if err := c.sessions.Close(ctx.Request.Context(), sessionID); err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     "closed",
		"session_id": sessionID,
	})
}
