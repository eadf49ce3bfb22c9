package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentService owns the per-post comment forest. Parents are assigned
// once at creation and must already exist on the same post, so threads
// can never cycle.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentService
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// AddComment attaches a comment (optionally as a reply) to a post and
// notifies the post owner unless they authored it themselves.
func (s *CommentService) AddComment(authorID, postID uint, text string, parentID *uint) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty comment text", ErrValidation)
	}

	var comment *models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		post, err := repositories.NewPostRepository(tx).GetPostByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post %d", ErrNotFound, postID)
			}
			return err
		}

		comments := repositories.NewCommentRepository(tx)
		if parentID != nil {
			parent, err := comments.GetCommentByID(*parentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: parent comment %d", ErrNotFound, *parentID)
				}
				return err
			}
			if parent.PostID != postID {
				return fmt.Errorf("%w: parent comment belongs to another post", ErrValidation)
			}
		}

		comment = &models.Comment{PostID: postID, AuthorID: authorID, Text: text, ParentID: parentID}
		if err := comments.CreateComment(comment); err != nil {
			return err
		}

		return recordNotification(tx, models.Notification{
			Type:        models.NotificationComment,
			ActorID:     authorID,
			RecipientID: post.OwnerID,
			Verb:        models.VerbCommented,
			TargetType:  models.TargetPost,
			TargetID:    postID,
		})
	})
	if err != nil {
		return nil, wrapTx(err)
	}
	return comment, nil
}

// DeleteComment removes a comment and its whole reply subtree. Only the
// author may delete.
func (s *CommentService) DeleteComment(requesterID, commentID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		comments := repositories.NewCommentRepository(tx)
		comment, err := comments.GetCommentByID(commentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
			}
			return err
		}
		if comment.AuthorID != requesterID {
			return fmt.Errorf("%w: not the comment author", ErrPermission)
		}

		ids, err := collectThreadIDs(comments, []uint{commentID})
		if err != nil {
			return err
		}
		return comments.DeleteByIDs(ids)
	})
	return wrapTx(err)
}

// TopLevelComments returns a post's root comments, oldest first.
func (s *CommentService) TopLevelComments(postID uint) ([]models.Comment, error) {
	if err := s.requirePost(postID); err != nil {
		return nil, err
	}
	comments, err := repositories.NewCommentRepository(s.db).TopLevelByPostID(postID)
	if err != nil {
		return nil, wrapTx(err)
	}
	return comments, nil
}

// Replies returns a comment's direct children, oldest first.
func (s *CommentService) Replies(commentID uint) ([]models.Comment, error) {
	comments := repositories.NewCommentRepository(s.db)
	if _, err := comments.GetCommentByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, wrapTx(err)
	}
	replies, err := comments.RepliesOf(commentID)
	if err != nil {
		return nil, wrapTx(err)
	}
	return replies, nil
}

func (s *CommentService) requirePost(postID uint) error {
	if _, err := repositories.NewPostRepository(s.db).GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post %d", ErrNotFound, postID)
		}
		return wrapTx(err)
	}
	return nil
}

// collectThreadIDs expands a set of comment ids to include every
// descendant reply, level by level. Parent assignment is creation-only,
// so the walk terminates.
func collectThreadIDs(repo repositories.CommentRepository, roots []uint) ([]uint, error) {
	all := append([]uint(nil), roots...)
	frontier := roots
	for len(frontier) > 0 {
		children, err := repo.IDsByParentIDs(frontier)
		if err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}
	return all, nil
}
