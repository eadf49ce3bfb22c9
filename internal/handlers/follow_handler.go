package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/viewpost-app/backend/internal/services"
)

// FollowHandler handles the follow toggle
type FollowHandler struct {
	follows *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows *services.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.ToggleFollow)
}

// ToggleFollow follows the target if not yet followed, unfollows
// otherwise. Self-follow is rejected here and asserted again in the core.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	following, err := h.follows.ToggleFollow(currentUserID, c.Param("username"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": following})
}
