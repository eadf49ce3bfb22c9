package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/services"
)

// CommentHandler handles threaded comments on posts
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetThread)
	g.POST("/posts/:id/comments", h.AddComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// ThreadedComment is a comment with its replies nested for rendering.
type ThreadedComment struct {
	models.Comment
	Replies []ThreadedComment `json:"replies"`
}

// GetThread returns a post's full comment forest, oldest first at every
// level.
func (h *CommentHandler) GetThread(c echo.Context) error {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	top, err := h.comments.TopLevelComments(postID)
	if err != nil {
		return serviceError(err)
	}

	thread := make([]ThreadedComment, len(top))
	for i, comment := range top {
		node, err := h.buildThread(comment)
		if err != nil {
			return serviceError(err)
		}
		thread[i] = node
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": thread})
}

func (h *CommentHandler) buildThread(comment models.Comment) (ThreadedComment, error) {
	node := ThreadedComment{Comment: comment, Replies: []ThreadedComment{}}
	replies, err := h.comments.Replies(comment.ID)
	if err != nil {
		return node, err
	}
	for _, reply := range replies {
		child, err := h.buildThread(reply)
		if err != nil {
			return node, err
		}
		node.Replies = append(node.Replies, child)
	}
	return node, nil
}

// AddComment attaches a comment, optionally as a reply, to a post.
func (h *CommentHandler) AddComment(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.comments.AddComment(userID, postID, req.Text, req.ParentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment the current user authored, with its
// reply subtree.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if err := h.comments.DeleteComment(userID, commentID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
