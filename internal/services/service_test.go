package services

import (
	"fmt"
	"testing"

	"github.com/viewpost-app/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type noopMailer struct{}

func (noopMailer) SendWelcome(email, username string) error { return nil }

// registerUser creates a user plus profile through the account service,
// with a fixed password for later sign-in checks.
func registerUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	svc := NewAccountService(db, noopMailer{})
	user, err := svc.Register(models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func createPost(t *testing.T, db *gorm.DB, ownerID uint, content string) *models.Post {
	t.Helper()
	post, err := NewPostService(db).CreatePost(ownerID, content, "")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func notificationsFor(t *testing.T, db *gorm.DB, recipientID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	if err := db.Where("recipient_id = ?", recipientID).Order("id").Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	return notifications
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}
