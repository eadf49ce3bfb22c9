package models

import "time"

// Follow is a directed edge in the follow graph between two profiles.
// Followers are the reverse query direction of the same table; there is
// no separately maintained followers set. The composite unique index
// keeps concurrent toggles from ever duplicating an edge.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
