package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conversation-service/internal/service"
)

// ProfileHandler serves user profiles.
type ProfileHandler struct {
	profiles service.ProfileService
}

func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/users/:id/profile", h.GetProfile)
}

// GetProfile returns a user with their posts and counters.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}
