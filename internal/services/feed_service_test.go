package services

import (
	"testing"
	"time"

	"github.com/viewpost-app/backend/internal/models"
)

func TestFeedExcludesOwnPosts(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	createPost(t, db, alice.ID, "from alice")
	createPost(t, db, bob.ID, "from bob")
	svc := NewFeedService(db)

	feed, err := svc.ListExcludingOwner(alice.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 1 || feed[0].OwnerID != bob.ID {
		t.Fatalf("expected only bob's post, got %+v", feed)
	}
}

func TestFollowingFeedFiltersToFollowees(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	carol := registerUser(t, db, "carol")
	createPost(t, db, bob.ID, "from bob")
	createPost(t, db, carol.ID, "from carol")
	createPost(t, db, alice.ID, "from alice")

	if _, err := NewFollowService(db).ToggleFollow(alice.ID, "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	svc := NewFeedService(db)
	feed, err := svc.ListForFollowees(alice.ID)
	if err != nil {
		t.Fatalf("following feed: %v", err)
	}
	if len(feed) != 1 || feed[0].OwnerID != bob.ID {
		t.Fatalf("expected only bob's post, got %+v", feed)
	}
}

func TestFollowingFeedEmptyWithoutFollows(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	createPost(t, db, bob.ID, "from bob")

	feed, err := NewFeedService(db).ListForFollowees(alice.ID)
	if err != nil {
		t.Fatalf("following feed: %v", err)
	}
	if len(feed) != 0 {
		t.Fatalf("expected empty feed, got %+v", feed)
	}
}

func TestFeedOrderNewestFirstWithIDTieBreak(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")

	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := models.Post{OwnerID: bob.ID, Content: "older", CreatedAt: when.Add(-time.Hour)}
	first := models.Post{OwnerID: bob.ID, Content: "same instant a", CreatedAt: when}
	second := models.Post{OwnerID: bob.ID, Content: "same instant b", CreatedAt: when}
	for _, p := range []*models.Post{&older, &first, &second} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}

	feed, err := NewFeedService(db).ListExcludingOwner(alice.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(feed))
	}
	if feed[0].ID != second.ID || feed[1].ID != first.ID || feed[2].ID != older.ID {
		t.Fatalf("unexpected order: %d %d %d", feed[0].ID, feed[1].ID, feed[2].ID)
	}
}

func TestSearchUsers(t *testing.T) {
	db := setupServiceDB(t)
	registerUser(t, db, "alice")
	registerUser(t, db, "alina")
	registerUser(t, db, "bob")
	svc := NewFeedService(db)

	users, err := svc.SearchUsers("ALI")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 matches, got %+v", users)
	}
	if users[0].Username != "alice" || users[1].Username != "alina" {
		t.Fatalf("unexpected order: %+v", users)
	}
}
