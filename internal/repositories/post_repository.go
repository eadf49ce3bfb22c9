package repositories

import (
	"github.com/viewpost-app/backend/internal/models"
	"gorm.io/gorm"
)

// feedOrder is the deterministic feed ordering: newest first, with the
// id as a stable tie-break for same-instant posts.
const feedOrder = "created_at DESC, id DESC"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	ListExcludingOwner(viewerID uint) ([]models.Post, error)
	ListForOwner(ownerID uint) ([]models.Post, error)
	ListForOwners(ownerIDs []uint) ([]models.Post, error)
	CountForOwner(ownerID uint) (int64, error)
	GetPostIDsByOwner(ownerID uint) ([]uint, error)
	DeletePost(id uint) error
	DeleteByOwner(ownerID uint) error
}

// GormPostRepository implements PostRepository
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new GormPostRepository
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *GormPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListExcludingOwner is the default feed: everyone's posts but the viewer's.
func (r *GormPostRepository) ListExcludingOwner(viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("owner_id <> ?", viewerID).Order(feedOrder).Find(&posts).Error
	return posts, err
}

func (r *GormPostRepository) ListForOwner(ownerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("owner_id = ?", ownerID).Order(feedOrder).Find(&posts).Error
	return posts, err
}

func (r *GormPostRepository) ListForOwners(ownerIDs []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(ownerIDs) == 0 {
		return posts, nil
	}
	err := r.db.Where("owner_id IN ?", ownerIDs).Order(feedOrder).Find(&posts).Error
	return posts, err
}

func (r *GormPostRepository) CountForOwner(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *GormPostRepository) GetPostIDsByOwner(ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Post{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *GormPostRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormPostRepository) DeleteByOwner(ownerID uint) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&models.Post{}).Error
}
