package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account identity. Credentials are owned here (bcrypt hash);
// Firebase-backed users carry a FirebaseUID instead of a local password.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Password    string    `json:"-"` // bcrypt hash, never serialized
	FirebaseUID string    `json:"firebase_uid,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserCompact is the embedded author/actor shape used in feed and
// notification payloads.
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ToCompact returns the compact representation of a user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

// RegisterRequest defines the request body for local registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=500"`
	PhotoRef string `json:"photo_ref,omitempty"`
}

// SignInRequest accepts either a username or an email as the identifier
type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// ChangeEmailRequest defines the request body for changing the account email
type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmPasswordRequest guards destructive account actions
type ConfirmPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
