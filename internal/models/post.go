package models

import "time"

// Post is a user's feed entry. CreatedAt is immutable; feeds order by it
// descending with ID as the tie-break.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"index"`
	Content   string    `json:"content"`
	ImageRef  string    `json:"image_ref,omitempty"` // opaque asset store token
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// Like is a user's like on a post. The composite unique index makes
// concurrent toggles by the same user converge to a single state.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ImageRef string `json:"image_ref,omitempty"`
}
