package services

import (
	"errors"
	"testing"

	"github.com/viewpost-app/backend/internal/models"
)

func TestToggleFollowCreatesEdgeAndNotification(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	svc := NewFollowService(db)

	following, err := svc.ToggleFollow(alice.ID, "bob")
	if err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	if !following {
		t.Fatal("expected follow to be active after first toggle")
	}

	list, err := svc.Following("alice")
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if len(list) != 1 || list[0].User.Username != "bob" {
		t.Fatalf("expected alice to follow only bob, got %+v", list)
	}

	followers, err := svc.Followers("bob")
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(followers) != 1 || followers[0].User.Username != "alice" {
		t.Fatalf("expected bob followed only by alice, got %+v", followers)
	}

	// A user never appears in their own follower or following lists.
	ownFollowing, _ := svc.Following("bob")
	if len(ownFollowing) != 0 {
		t.Fatalf("bob should follow nobody, got %+v", ownFollowing)
	}

	notifications := notificationsFor(t, db, bob.ID)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification for bob, got %d", len(notifications))
	}
	n := notifications[0]
	if n.Type != models.NotificationFollow || n.ActorID != alice.ID || n.Verb != models.VerbFollowed {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.Read {
		t.Fatal("new notification should be unread")
	}
}

func TestToggleFollowIsItsOwnInverse(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	registerUser(t, db, "bob")
	svc := NewFollowService(db)

	if _, err := svc.ToggleFollow(alice.ID, "bob"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	following, err := svc.ToggleFollow(alice.ID, "bob")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if following {
		t.Fatal("second toggle should remove the follow")
	}
	if n := countRows(t, db, &models.Follow{}, "1 = 1"); n != 0 {
		t.Fatalf("expected no follow rows, got %d", n)
	}

	// Unfollowing emits no event; the original follow notification stays.
	if n := countRows(t, db, &models.Notification{}, "1 = 1"); n != 1 {
		t.Fatalf("expected 1 notification after unfollow, got %d", n)
	}

	isFollowing, err := svc.IsFollowing(alice.ID, "bob")
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if isFollowing {
		t.Fatal("edge should be gone")
	}
}

func TestToggleFollowSelfRejected(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	svc := NewFollowService(db)

	_, err := svc.ToggleFollow(alice.ID, "alice")
	if !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
	if n := countRows(t, db, &models.Follow{}, "1 = 1"); n != 0 {
		t.Fatalf("self follow must not create an edge, got %d rows", n)
	}
}

func TestToggleFollowUnknownTarget(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	svc := NewFollowService(db)

	if _, err := svc.ToggleFollow(alice.ID, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
