package api

import (
	"net/http"

	"medagent/backend/internal/models"
	"medagent/backend/internal/service"
	"medagent/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ProfileController handles profile read and partial-update endpoints.
type ProfileController struct {
	profiles *service.ProfileService
}

// NewProfileController creates a new profile controller
func NewProfileController(profiles *service.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// RegisterRoutes registers the profile routes on the chat group
func (c *ProfileController) RegisterRoutes(chat *gin.RouterGroup) {
	chat.POST("/profile/:sessionId", c.UpsertProfile)
	chat.GET("/profile/:sessionId", c.GetProfile)
}

// UpsertProfile creates the profile on first write and applies a
// partial update afterwards
func (c *ProfileController) UpsertProfile(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	var update models.ProfileUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.Error(errors.NewBadRequestError("INVALID_REQUEST", "Invalid profile payload").
			WithDetails(err.Error()))
		return
	}

	profile, created, err := c.profiles.Upsert(ctx.Request.Context(), sessionID, update)
	if err != nil {
		ctx.Error(err)
		return
	}

	status := "updated"
	if created {
		status = "created"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  status,
		"profile": profile,
	})
}

// GetProfile returns the profile for a session, or null when none exists
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	profile, err := c.profiles.Get(ctx.Request.Context(), sessionID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile})
}
