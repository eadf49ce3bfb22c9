package services

import (
	"errors"
	"fmt"

	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowService owns the directed follow graph between profiles.
// ToggleFollow is the single exposed mutation: there is no unconditional
// follow or unfollow entry point at the boundary.
type FollowService struct {
	db *gorm.DB
}

// NewFollowService creates a new FollowService
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// ToggleFollow flips the edge from the actor's profile to the target's.
// A removed edge emits nothing; a new edge records a follow notification
// in the same transaction. Returns the resulting following state.
func (s *FollowService) ToggleFollow(actorUserID uint, targetUsername string) (bool, error) {
	profiles := repositories.NewProfileRepository(s.db)

	actor, err := profiles.GetByUserID(actorUserID)
	if err != nil {
		return false, s.profileErr(err, "actor")
	}
	target, err := profiles.GetByUsername(targetUsername)
	if err != nil {
		return false, s.profileErr(err, targetUsername)
	}
	// The boundary never routes a self-toggle here, but the invariant is
	// asserted anyway and fails closed.
	if actor.ID == target.ID {
		return false, fmt.Errorf("%w: %s", ErrSelfFollow, targetUsername)
	}

	var following bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		follows := repositories.NewFollowRepository(tx)
		exists, err := follows.IsFollowing(actor.ID, target.ID)
		if err != nil {
			return err
		}
		if exists {
			following = false
			return follows.DeleteFollow(actor.ID, target.ID)
		}
		if err := follows.CreateFollow(&models.Follow{FollowerID: actor.ID, FollowingID: target.ID}); err != nil {
			return err
		}
		following = true
		return recordNotification(tx, models.Notification{
			Type:        models.NotificationFollow,
			ActorID:     actorUserID,
			RecipientID: target.UserID,
			Verb:        models.VerbFollowed,
		})
	})
	if err != nil {
		return false, wrapTx(err)
	}
	return following, nil
}

// Followers lists the profiles following username, ordered by username.
func (s *FollowService) Followers(username string) ([]models.Profile, error) {
	profile, err := repositories.NewProfileRepository(s.db).GetByUsername(username)
	if err != nil {
		return nil, s.profileErr(err, username)
	}
	followers, err := repositories.NewFollowRepository(s.db).GetFollowers(profile.ID)
	if err != nil {
		return nil, wrapTx(err)
	}
	return followers, nil
}

// Following lists the profiles username follows, ordered by username.
func (s *FollowService) Following(username string) ([]models.Profile, error) {
	profile, err := repositories.NewProfileRepository(s.db).GetByUsername(username)
	if err != nil {
		return nil, s.profileErr(err, username)
	}
	following, err := repositories.NewFollowRepository(s.db).GetFollowing(profile.ID)
	if err != nil {
		return nil, wrapTx(err)
	}
	return following, nil
}

// IsFollowing reports whether the actor currently follows the target.
func (s *FollowService) IsFollowing(actorUserID uint, targetUsername string) (bool, error) {
	profiles := repositories.NewProfileRepository(s.db)
	actor, err := profiles.GetByUserID(actorUserID)
	if err != nil {
		return false, s.profileErr(err, "actor")
	}
	target, err := profiles.GetByUsername(targetUsername)
	if err != nil {
		return false, s.profileErr(err, targetUsername)
	}
	ok, err := repositories.NewFollowRepository(s.db).IsFollowing(actor.ID, target.ID)
	if err != nil {
		return false, wrapTx(err)
	}
	return ok, nil
}

func (s *FollowService) profileErr(err error, who string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: profile %s", ErrNotFound, who)
	}
	return wrapTx(err)
}
