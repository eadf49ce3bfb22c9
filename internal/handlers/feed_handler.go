package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"github.com/viewpost-app/backend/internal/services"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feeds             *services.FeedService
	userRepository    repositories.UserRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	feeds *services.FeedService,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *FeedHandler {
	return &FeedHandler{
		feeds:             feeds,
		userRepository:    userRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/following", h.GetFollowingFeed)
}

// EnrichedPost is a post with author info and viewer-specific flags
type EnrichedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	IsLiked      bool               `json:"is_liked"`
	LikeCount    int64              `json:"like_count"`
	CommentCount int64              `json:"comment_count"`
}

// GetFeed returns the default feed: everyone's posts except the viewer's.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.feeds.ListExcludingOwner(viewerID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": h.enrich(viewerID, posts)})
}

// GetFollowingFeed returns posts authored by the users the viewer follows.
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.feeds.ListForFollowees(viewerID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": h.enrich(viewerID, posts)})
}

func (h *FeedHandler) enrich(viewerID uint, posts []models.Post) []EnrichedPost {
	userCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		enriched[i] = EnrichedPost{Post: p}

		author, ok := userCache[p.OwnerID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(p.OwnerID); err == nil {
				author = user.ToCompact()
				userCache[p.OwnerID] = author
			}
		}
		enriched[i].Author = author

		enriched[i].IsLiked, _ = h.likeRepository.HasUserLikedPost(p.ID, viewerID)
		enriched[i].LikeCount, _ = h.likeRepository.CountByPostID(p.ID)
		enriched[i].CommentCount, _ = h.commentRepository.CountByPostID(p.ID)
	}
	return enriched
}
