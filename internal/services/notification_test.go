package services

import (
	"context"
	"testing"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
)

func TestNotifyMembersExcludesActor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	list := env.createList(t, "Groceries", models.ListTypeCheck, alice.ID)
	for _, u := range []*models.User{bob, carol} {
		if _, err := env.lists.AddMember(ctx, list.ID, u.ID); err != nil {
			t.Fatalf("AddMember: %v", err)
		}
	}

	hydrated, err := env.lists.Get(ctx, list.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	before := len(env.feed(t, alice.ID)) + len(env.feed(t, bob.ID)) + len(env.feed(t, carol.ID))

	if err := env.notifications.NotifyMembers(ctx, hydrated, bob.ID, "ping"); err != nil {
		t.Fatalf("NotifyMembers: %v", err)
	}

	// |members| - 1 notifications, none addressed to the excluded user.
	after := len(env.feed(t, alice.ID)) + len(env.feed(t, bob.ID)) + len(env.feed(t, carol.ID))
	if after-before != len(hydrated.Members)-1 {
		t.Errorf("fan-out delta = %d, want %d", after-before, len(hydrated.Members)-1)
	}
	for _, n := range env.feed(t, bob.ID) {
		if n.Message == "ping" {
			t.Error("excluded user received the notification")
		}
	}
}

func TestNotifyMembersSoleExcludedMemberIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, "Groceries", models.ListTypeCheck, alice.ID)

	hydrated, err := env.lists.Get(ctx, list.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := env.notifications.NotifyMembers(ctx, hydrated, alice.ID, "ping"); err != nil {
		t.Fatalf("NotifyMembers: %v", err)
	}
	if got := env.feed(t, alice.ID); len(got) != 0 {
		t.Errorf("notifications = %d, want 0", len(got))
	}
}

func TestListForUserOrderingAndContext(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	list := env.createList(t, "Groceries", models.ListTypeCheck, bob.ID)
	if _, err := env.lists.AddMember(ctx, list.ID, alice.ID); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if _, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Milk"}, nil); err != nil {
		t.Fatalf("item create: %v", err)
	}
	if _, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Eggs"}, nil); err != nil {
		t.Fatalf("item create: %v", err)
	}

	feed := env.feed(t, alice.ID)
	if len(feed) != 2 {
		t.Fatalf("notifications = %d, want 2", len(feed))
	}
	// Most recent first.
	if feed[0].Message != "Item Eggs added to list Groceries" {
		t.Errorf("feed[0] = %q", feed[0].Message)
	}
	if feed[1].Message != "Item Milk added to list Groceries" {
		t.Errorf("feed[1] = %q", feed[1].Message)
	}
	if feed[0].CreatedAt.Before(feed[1].CreatedAt) {
		t.Error("feed not in descending order")
	}
	for _, n := range feed {
		if n.List == nil || n.List.ID != list.ID || n.List.Title != "Groceries" {
			t.Errorf("missing list context on %q", n.Message)
		}
	}
}

func TestListForUserEmptyAndUnknown(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	feed := env.feed(t, alice.ID)
	if feed == nil || len(feed) != 0 {
		t.Errorf("expected empty slice for existing user, got %v", feed)
	}

	if _, err := env.notifications.ListForUser(context.Background(), "missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found for unknown user, got %v", err)
	}
}
