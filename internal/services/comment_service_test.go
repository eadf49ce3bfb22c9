package services

import (
	"errors"
	"testing"

	"github.com/viewpost-app/backend/internal/models"
)

func TestAddCommentBuildsThread(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	carol := registerUser(t, db, "carol")
	post := createPost(t, db, bob.ID, "bob's post")
	svc := NewCommentService(db)

	top, err := svc.AddComment(alice.ID, post.ID, "first", nil)
	if err != nil {
		t.Fatalf("top-level comment: %v", err)
	}
	reply, err := svc.AddComment(carol.ID, post.ID, "second", &top.ID)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}

	topLevel, err := svc.TopLevelComments(post.ID)
	if err != nil {
		t.Fatalf("top level: %v", err)
	}
	if len(topLevel) != 1 || topLevel[0].ID != top.ID {
		t.Fatalf("expected one top-level comment, got %+v", topLevel)
	}

	replies, err := svc.Replies(top.ID)
	if err != nil {
		t.Fatalf("replies: %v", err)
	}
	if len(replies) != 1 || replies[0].ID != reply.ID {
		t.Fatalf("expected one reply, got %+v", replies)
	}

	// Both alice's comment and carol's reply notify the post owner.
	notifications := notificationsFor(t, db, bob.ID)
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications for bob, got %d", len(notifications))
	}
	for _, n := range notifications {
		if n.Verb != models.VerbCommented || n.TargetID != post.ID {
			t.Fatalf("unexpected notification %+v", n)
		}
	}
}

func TestAddCommentValidation(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	post := createPost(t, db, bob.ID, "bob's post")
	other := createPost(t, db, bob.ID, "another post")
	svc := NewCommentService(db)

	if _, err := svc.AddComment(alice.ID, post.ID, "   ", nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank text: expected ErrValidation, got %v", err)
	}
	if _, err := svc.AddComment(alice.ID, 9999, "hi", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing post: expected ErrNotFound, got %v", err)
	}

	missing := uint(9999)
	if _, err := svc.AddComment(alice.ID, post.ID, "hi", &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing parent: expected ErrNotFound, got %v", err)
	}

	// A parent on a different post cannot anchor the reply.
	stray, err := svc.AddComment(alice.ID, other.ID, "elsewhere", nil)
	if err != nil {
		t.Fatalf("comment on other post: %v", err)
	}
	if _, err := svc.AddComment(alice.ID, post.ID, "hi", &stray.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("cross-post parent: expected ErrValidation, got %v", err)
	}
}

func TestCommentOrderIsStable(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	post := createPost(t, db, alice.ID, "ordering")
	svc := NewCommentService(db)

	var ids []uint
	for _, text := range []string{"one", "two", "three"} {
		c, err := svc.AddComment(alice.ID, post.ID, text, nil)
		if err != nil {
			t.Fatalf("comment %q: %v", text, err)
		}
		ids = append(ids, c.ID)
	}

	topLevel, err := svc.TopLevelComments(post.ID)
	if err != nil {
		t.Fatalf("top level: %v", err)
	}
	if len(topLevel) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(topLevel))
	}
	for i, c := range topLevel {
		if c.ID != ids[i] {
			t.Fatalf("position %d: expected id %d, got %d", i, ids[i], c.ID)
		}
	}
}

func TestDeleteCommentRemovesReplySubtree(t *testing.T) {
	db := setupServiceDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	post := createPost(t, db, bob.ID, "bob's post")
	svc := NewCommentService(db)

	top, _ := svc.AddComment(alice.ID, post.ID, "root", nil)
	mid, _ := svc.AddComment(bob.ID, post.ID, "reply", &top.ID)
	if _, err := svc.AddComment(alice.ID, post.ID, "deep", &mid.ID); err != nil {
		t.Fatalf("deep reply: %v", err)
	}
	sibling, err := svc.AddComment(bob.ID, post.ID, "aside", nil)
	if err != nil {
		t.Fatalf("sibling: %v", err)
	}

	if err := svc.DeleteComment(bob.ID, top.ID); !errors.Is(err, ErrPermission) {
		t.Fatalf("non-author delete: expected ErrPermission, got %v", err)
	}

	if err := svc.DeleteComment(alice.ID, top.ID); err != nil {
		t.Fatalf("delete thread: %v", err)
	}

	var left []models.Comment
	if err := db.Find(&left).Error; err != nil {
		t.Fatalf("load comments: %v", err)
	}
	if len(left) != 1 || left[0].ID != sibling.ID {
		t.Fatalf("expected only the sibling to survive, got %+v", left)
	}
}
