package models

import "time"

// Comment belongs to a post. ParentID forms a reply tree; a parent must
// belong to the same post, so every thread is a forest rooted at the
// post's top-level comments. Comments order ascending by DateAdded.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Text      string    `json:"text"`
	DateAdded time.Time `json:"date_added" gorm:"autoCreateTime;index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}
