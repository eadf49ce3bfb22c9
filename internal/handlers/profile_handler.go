package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"github.com/viewpost-app/backend/internal/services"
)

// ProfileHandler handles profile pages and account settings
type ProfileHandler struct {
	accounts         *services.AccountService
	follows          *services.FollowService
	feeds            *services.FeedService
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	accounts *services.AccountService,
	follows *services.FollowService,
	feeds *services.FeedService,
	postRepo repositories.PostRepository,
	followRepo repositories.FollowRepository,
) *ProfileHandler {
	return &ProfileHandler{
		accounts:         accounts,
		follows:          follows,
		feeds:            feeds,
		postRepository:   postRepo,
		followRepository: followRepo,
	}
}

// RegisterProfileRoutes registers profile and settings routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:username", h.ViewProfile)
	g.GET("/users/:username/followers", h.Followers)
	g.GET("/users/:username/following", h.Following)
	g.PUT("/profile", h.EditProfile)
	g.PUT("/profile/theme", h.SetTheme)
	g.PUT("/profile/email", h.ChangeEmail)
	g.DELETE("/profile", h.DeleteAccount)
}

// ViewProfile returns a profile with its posts and follow counts.
func (h *ProfileHandler) ViewProfile(c echo.Context) error {
	username := c.Param("username")

	profile, err := h.accounts.GetProfile(username)
	if err != nil {
		return serviceError(err)
	}

	posts, err := h.feeds.ListForOwner(profile.UserID)
	if err != nil {
		return serviceError(err)
	}
	followersCount, _ := h.followRepository.GetFollowersCount(profile.ID)
	followingCount, _ := h.followRepository.GetFollowingCount(profile.ID)

	isFollowing := false
	if viewerID := getUserIDFromContext(c); viewerID != 0 && viewerID != profile.UserID {
		isFollowing, _ = h.follows.IsFollowing(viewerID, username)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"profile":         profile,
		"posts":           posts,
		"posts_count":     len(posts),
		"followers_count": followersCount,
		"following_count": followingCount,
		"is_following":    isFollowing,
	})
}

// Followers lists who follows the profile.
func (h *ProfileHandler) Followers(c echo.Context) error {
	profiles, err := h.follows.Followers(c.Param("username"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profiles": profiles})
}

// Following lists whom the profile follows.
func (h *ProfileHandler) Following(c echo.Context) error {
	profiles, err := h.follows.Following(c.Param("username"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profiles": profiles})
}

// SearchUsers finds users by username substring.
func (h *ProfileHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusOK, echo.Map{"results": []models.UserCompact{}})
	}
	users, err := h.feeds.SearchUsers(query)
	if err != nil {
		return serviceError(err)
	}
	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// EditProfile updates username, bio and photo.
func (h *ProfileHandler) EditProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.accounts.UpdateProfile(userID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// SetTheme switches the profile theme.
func (h *ProfileHandler) SetTheme(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accounts.SetTheme(userID, req.Theme); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"theme": req.Theme})
}

// ChangeEmail updates the account email.
func (h *ProfileHandler) ChangeEmail(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ChangeEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accounts.ChangeEmail(userID, req.Email); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAccount removes the account after confirming the password.
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ConfirmPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accounts.DeleteAccount(userID, req.Password); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
