package services

import (
	"errors"
	"testing"

	"github.com/viewpost-app/backend/internal/models"
)

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	svc := NewPostService(db)

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := svc.CreatePost(alice.ID, content, ""); !errors.Is(err, ErrValidation) {
			t.Fatalf("content %q: expected ErrValidation, got %v", content, err)
		}
	}

	post, err := svc.CreatePost(alice.ID, "  hello world  ", "")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Content != "hello world" {
		t.Fatalf("expected trimmed content, got %q", post.Content)
	}
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	post := createPost(t, db, bob.ID, "bob's post")
	svc := NewPostService(db)

	liked, count, err := svc.ToggleLike(alice.ID, post.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !liked || count != 1 {
		t.Fatalf("expected liked=true count=1, got %v %d", liked, count)
	}

	notifications := notificationsFor(t, db, bob.ID)
	if len(notifications) != 1 || notifications[0].Verb != models.VerbLiked {
		t.Fatalf("expected one like notification for bob, got %+v", notifications)
	}
	if notifications[0].TargetType != models.TargetPost || notifications[0].TargetID != post.ID {
		t.Fatalf("notification should reference the post, got %+v", notifications[0])
	}

	liked, count, err = svc.ToggleLike(alice.ID, post.ID)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if liked || count != 0 {
		t.Fatalf("expected liked=false count=0, got %v %d", liked, count)
	}
	if n := countRows(t, db, &models.Like{}, "1 = 1"); n != 0 {
		t.Fatalf("expected no like rows, got %d", n)
	}
	// Unliking emits no event and does not retract the earlier one.
	if n := countRows(t, db, &models.Notification{}, "1 = 1"); n != 1 {
		t.Fatalf("expected 1 notification, got %d", n)
	}
}

func TestToggleLikeOwnPostSkipsNotification(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	post := createPost(t, db, alice.ID, "my own post")
	svc := NewPostService(db)

	liked, count, err := svc.ToggleLike(alice.ID, post.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !liked || count != 1 {
		t.Fatalf("expected liked=true count=1, got %v %d", liked, count)
	}
	if n := countRows(t, db, &models.Notification{}, "1 = 1"); n != 0 {
		t.Fatalf("self-like must not notify, got %d notifications", n)
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	svc := NewPostService(db)

	if _, _, err := svc.ToggleLike(alice.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePostRequiresOwnership(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	post := createPost(t, db, bob.ID, "bob's post")
	svc := NewPostService(db)

	if err := svc.DeletePost(alice.ID, post.ID); !errors.Is(err, ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
	if n := countRows(t, db, &models.Post{}, "id = ?", post.ID); n != 1 {
		t.Fatal("post must survive a rejected delete")
	}
}

func TestDeletePostCascades(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	post := createPost(t, db, bob.ID, "bob's post")

	comments := NewCommentService(db)
	top, err := comments.AddComment(alice.ID, post.ID, "nice", nil)
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := comments.AddComment(bob.ID, post.ID, "thanks", &top.ID); err != nil {
		t.Fatalf("reply: %v", err)
	}

	posts := NewPostService(db)
	if _, _, err := posts.ToggleLike(alice.ID, post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	// A follow notification has no post target and must survive the cascade.
	if _, err := NewFollowService(db).ToggleFollow(alice.ID, "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	if err := posts.DeletePost(bob.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	if n := countRows(t, db, &models.Post{}, "1 = 1"); n != 0 {
		t.Fatalf("expected no posts, got %d", n)
	}
	if n := countRows(t, db, &models.Comment{}, "1 = 1"); n != 0 {
		t.Fatalf("expected no comments, got %d", n)
	}
	if n := countRows(t, db, &models.Like{}, "1 = 1"); n != 0 {
		t.Fatalf("expected no likes, got %d", n)
	}
	if n := countRows(t, db, &models.Notification{}, "1 = 1"); n != 1 {
		t.Fatalf("expected only the follow notification to remain, got %d", n)
	}
	var remaining models.Notification
	if err := db.First(&remaining).Error; err != nil {
		t.Fatalf("load remaining notification: %v", err)
	}
	if remaining.Type != models.NotificationFollow {
		t.Fatalf("expected the follow notification, got %+v", remaining)
	}
}
