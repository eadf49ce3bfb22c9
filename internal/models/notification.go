package models

import "time"

// Notification types and their fixed verb vocabulary.
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"

	VerbFollowed  = "started following you"
	VerbLiked     = "liked your post"
	VerbCommented = "commented on your post"
)

// Target kinds for the polymorphic notification target.
const (
	TargetPost = "post"
)

// Notification records that an actor did something to a recipient.
// Append-only except for the read flag; never created when actor and
// recipient are the same user. TargetType/TargetID form a tagged pair
// ("post" today, empty for follow notifications).
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Verb        string    `json:"verb"`
	TargetType  string    `json:"target_type,omitempty" gorm:"size:20;index:idx_notification_target"`
	TargetID    uint      `json:"target_id,omitempty" gorm:"index:idx_notification_target"`
	Read        bool      `json:"read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
