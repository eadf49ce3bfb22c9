package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostService owns posts and their like sets. Deleting a post cascades
// to its comments, likes and the notifications that target it, all in
// one transaction.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a new PostService
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// CreatePost stores a new post with a server-assigned id and timestamp.
func (s *PostService) CreatePost(ownerID uint, content, imageRef string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty post content", ErrValidation)
	}
	post := &models.Post{OwnerID: ownerID, Content: content, ImageRef: imageRef}
	if err := repositories.NewPostRepository(s.db).CreatePost(post); err != nil {
		return nil, wrapTx(err)
	}
	return post, nil
}

// DeletePost removes a post and everything hanging off it. Only the
// owner may delete; a partial cascade is never observable because the
// whole walk runs in one transaction.
func (s *PostService) DeletePost(requesterID, postID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostRepository(tx)
		post, err := posts.GetPostByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post %d", ErrNotFound, postID)
			}
			return err
		}
		if post.OwnerID != requesterID {
			return fmt.Errorf("%w: not the post owner", ErrPermission)
		}

		ids := []uint{postID}
		if err := repositories.NewCommentRepository(tx).DeleteByPostIDs(ids); err != nil {
			return err
		}
		if err := repositories.NewLikeRepository(tx).DeleteByPostIDs(ids); err != nil {
			return err
		}
		if err := repositories.NewNotificationRepository(tx).DeleteByTarget(models.TargetPost, ids); err != nil {
			return err
		}
		return posts.DeletePost(postID)
	})
	return wrapTx(err)
}

// ToggleLike flips the requester's membership in the post's like set and
// returns the new state with the updated count. Only the transition to
// liked notifies the owner; unliking never retracts a prior notification.
func (s *PostService) ToggleLike(userID, postID uint) (liked bool, count int64, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		post, err := repositories.NewPostRepository(tx).GetPostByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post %d", ErrNotFound, postID)
			}
			return err
		}

		likes := repositories.NewLikeRepository(tx)
		hasLiked, err := likes.HasUserLikedPost(postID, userID)
		if err != nil {
			return err
		}
		if hasLiked {
			if err := likes.DeleteLike(postID, userID); err != nil {
				return err
			}
			liked = false
		} else {
			if err := likes.CreateLike(&models.Like{PostID: postID, UserID: userID}); err != nil {
				return err
			}
			liked = true
			if err := recordNotification(tx, models.Notification{
				Type:        models.NotificationLike,
				ActorID:     userID,
				RecipientID: post.OwnerID,
				Verb:        models.VerbLiked,
				TargetType:  models.TargetPost,
				TargetID:    postID,
			}); err != nil {
				return err
			}
		}

		count, err = likes.CountByPostID(postID)
		return err
	})
	if err != nil {
		return false, 0, wrapTx(err)
	}
	return liked, count, nil
}
