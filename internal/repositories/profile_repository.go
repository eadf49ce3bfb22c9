package repositories

import (
	"github.com/viewpost-app/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetByUserID(userID uint) (*models.Profile, error)
	GetByUsername(username string) (*models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	DeleteByUserID(userID uint) error
}

// GormProfileRepository implements ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new GormProfileRepository
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *GormProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUsername resolves a profile through its owning user, case-insensitively.
func (r *GormProfileRepository) GetByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").
		Where("user_id IN (?)", r.db.Model(&models.User{}).Select("id").Where("LOWER(username) = LOWER(?)", username)).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

func (r *GormProfileRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}
