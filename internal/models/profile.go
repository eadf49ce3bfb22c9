package models

// Theme values for a profile.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Profile holds the public-facing attributes of a user. One per user,
// created in the same transaction as the user itself.
type Profile struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"uniqueIndex"`
	User     User   `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Bio      string `json:"bio"`
	PhotoRef string `json:"photo_ref,omitempty"` // opaque asset store token
	Theme    string `json:"theme" gorm:"size:5;default:light"`
}

// UpdateProfileRequest defines the request body for editing a profile
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=2,max=150"`
	Bio      string `json:"bio" validate:"max=500"`
	PhotoRef string `json:"photo_ref,omitempty"`
}

// ThemeRequest defines the request body for switching the UI theme
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}
