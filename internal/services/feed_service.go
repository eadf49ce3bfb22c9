package services

import (
	"errors"
	"fmt"

	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// FeedService composes the post store with the follow graph. Every call
// is a fresh composition; nothing is cached. All feeds order by
// created_at descending with the post id as a stable tie-break.
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a new FeedService
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// ListExcludingOwner is the default feed: all posts except the viewer's own.
func (s *FeedService) ListExcludingOwner(viewerID uint) ([]models.Post, error) {
	posts, err := repositories.NewPostRepository(s.db).ListExcludingOwner(viewerID)
	if err != nil {
		return nil, wrapTx(err)
	}
	return posts, nil
}

// ListForOwner is the profile view: all posts by one user.
func (s *FeedService) ListForOwner(ownerID uint) ([]models.Post, error) {
	posts, err := repositories.NewPostRepository(s.db).ListForOwner(ownerID)
	if err != nil {
		return nil, wrapTx(err)
	}
	return posts, nil
}

// ListForFollowees is the "following" feed: the followed profiles are
// translated to their underlying users before filtering by ownership.
func (s *FeedService) ListForFollowees(viewerID uint) ([]models.Post, error) {
	profile, err := repositories.NewProfileRepository(s.db).GetByUserID(viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile for user %d", ErrNotFound, viewerID)
		}
		return nil, wrapTx(err)
	}
	ownerIDs, err := repositories.NewFollowRepository(s.db).GetFolloweeUserIDs(profile.ID)
	if err != nil {
		return nil, wrapTx(err)
	}
	posts, err := repositories.NewPostRepository(s.db).ListForOwners(ownerIDs)
	if err != nil {
		return nil, wrapTx(err)
	}
	return posts, nil
}

// SearchUsers matches usernames by case-insensitive substring.
func (s *FeedService) SearchUsers(query string) ([]models.User, error) {
	users, err := repositories.NewUserRepository(s.db).SearchUsers(query)
	if err != nil {
		return nil, wrapTx(err)
	}
	return users, nil
}
