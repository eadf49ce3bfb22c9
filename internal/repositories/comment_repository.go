package repositories

import (
	"github.com/viewpost-app/backend/internal/models"
	"gorm.io/gorm"
)

// threadOrder keeps comment listings stable: oldest first, id tie-break.
const threadOrder = "date_added ASC, id ASC"

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	TopLevelByPostID(postID uint) ([]models.Comment, error)
	RepliesOf(parentID uint) ([]models.Comment, error)
	CountByPostID(postID uint) (int64, error)
	IDsByParentIDs(parentIDs []uint) ([]uint, error)
	IDsByAuthor(authorID uint) ([]uint, error)
	DeleteByIDs(ids []uint) error
	DeleteByPostIDs(postIDs []uint) error
}

// GormCommentRepository implements CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new GormCommentRepository
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *GormCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// TopLevelByPostID returns the roots of a post's comment forest.
func (r *GormCommentRepository) TopLevelByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ? AND parent_id IS NULL", postID).
		Order(threadOrder).
		Find(&comments).Error
	return comments, err
}

func (r *GormCommentRepository) RepliesOf(parentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("parent_id = ?", parentID).Order(threadOrder).Find(&comments).Error
	return comments, err
}

func (r *GormCommentRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// IDsByParentIDs returns the ids of direct children of any of the given
// comments; callers loop it to collect a whole reply subtree.
func (r *GormCommentRepository) IDsByParentIDs(parentIDs []uint) ([]uint, error) {
	var ids []uint
	if len(parentIDs) == 0 {
		return ids, nil
	}
	err := r.db.Model(&models.Comment{}).Where("parent_id IN ?", parentIDs).Pluck("id", &ids).Error
	return ids, err
}

func (r *GormCommentRepository) IDsByAuthor(authorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Comment{}).Where("author_id = ?", authorID).Pluck("id", &ids).Error
	return ids, err
}

func (r *GormCommentRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Comment{}).Error
}

func (r *GormCommentRepository) DeleteByPostIDs(postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error
}
