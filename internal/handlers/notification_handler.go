package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"github.com/viewpost-app/backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications  *services.NotificationService
	userRepository repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notifications:  notifications,
		userRepository: userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

// ListNotifications returns all of the viewer's notifications newest
// first. Listing marks everything read: the next unread count is zero
// until a new event arrives.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	notifications, err := h.notifications.ListAndMarkRead(userID)
	if err != nil {
		return serviceError(err)
	}

	userCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedNotification, len(notifications))
	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		actor, ok := userCache[n.ActorID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(n.ActorID); err == nil {
				actor = user.ToCompact()
				userCache[n.ActorID] = actor
			}
		}
		enriched[i].Actor = actor
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": enriched})
}

// GetUnreadCount returns the badge count without consuming unread state.
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.notifications.UnreadCount(userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}
