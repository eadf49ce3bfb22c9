package repositories

import (
	"github.com/viewpost-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations.
// All ids are profile ids; both query directions read the same edge set.
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(profileID uint) ([]models.Profile, error)
	GetFollowing(profileID uint) ([]models.Profile, error)
	GetFollowersCount(profileID uint) (int64, error)
	GetFollowingCount(profileID uint) (int64, error)
	GetFolloweeUserIDs(followerID uint) ([]uint, error)
	DeleteAllForProfile(profileID uint) error
}

// GormFollowRepository implements FollowRepository
type GormFollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new GormFollowRepository
func NewFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

func (r *GormFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *GormFollowRepository) DeleteFollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers lists profiles following the given profile, ordered by
// username so callers see a stable order.
func (r *GormFollowRepository) GetFollowers(profileID uint) ([]models.Profile, error) {
	return r.listProfiles("follower_id", "following_id", profileID)
}

// GetFollowing lists profiles the given profile follows, ordered by username.
func (r *GormFollowRepository) GetFollowing(profileID uint) ([]models.Profile, error) {
	return r.listProfiles("following_id", "follower_id", profileID)
}

func (r *GormFollowRepository) listProfiles(selectCol, whereCol string, profileID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.id IN (?)",
			r.db.Table("follows").Select(selectCol).Where(whereCol+" = ?", profileID)).
		Order("users.username").
		Find(&profiles).Error
	return profiles, err
}

func (r *GormFollowRepository) GetFollowersCount(profileID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", profileID).Count(&count).Error
	return count, err
}

func (r *GormFollowRepository) GetFollowingCount(profileID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", profileID).Count(&count).Error
	return count, err
}

// GetFolloweeUserIDs translates the followed profile set into the ids of
// their underlying users, for filtering the post store by ownership.
func (r *GormFollowRepository) GetFolloweeUserIDs(followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Table("profiles").Select("user_id").
		Where("id IN (?)",
			r.db.Table("follows").Select("following_id").Where("follower_id = ?", followerID)).
		Pluck("user_id", &ids).Error
	return ids, err
}

// DeleteAllForProfile removes edges in both directions, for account deletion.
func (r *GormFollowRepository) DeleteAllForProfile(profileID uint) error {
	return r.db.Where("follower_id = ? OR following_id = ?", profileID, profileID).
		Delete(&models.Follow{}).Error
}
