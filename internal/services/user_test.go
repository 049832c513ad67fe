package services

import (
	"context"
	"testing"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
)

func TestCreateUserDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	_, err := env.users.Create(context.Background(), models.CreateUserRequest{Username: "alice"}, nil)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateUserWithProfileImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Create(ctx, models.CreateUserRequest{Username: "alice"},
		&models.ImageUpload{Data: []byte("avatar"), MimeType: "image/jpeg"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ProfileImageID == nil {
		t.Fatal("profile image id not set")
	}
	image, err := env.images.Get(ctx, *user.ProfileImageID)
	if err != nil {
		t.Fatalf("image fetch: %v", err)
	}
	if string(image.Data) != "avatar" {
		t.Errorf("stored image data = %q", image.Data)
	}
}

func TestUpdateUserUsernameRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")

	if _, err := env.users.Update(ctx, alice.ID, models.UpdateUserRequest{Username: "bob"}, nil); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("taken username: expected conflict, got %v", err)
	}

	// Re-submitting one's own username is fine.
	if _, err := env.users.Update(ctx, alice.ID, models.UpdateUserRequest{Username: "alice"}, nil); err != nil {
		t.Errorf("same username rejected: %v", err)
	}

	renamed, err := env.users.Update(ctx, alice.ID, models.UpdateUserRequest{Username: "alicia"}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if renamed.Username != "alicia" {
		t.Errorf("username = %q, want %q", renamed.Username, "alicia")
	}

	if _, err := env.users.Update(ctx, "missing", models.UpdateUserRequest{Username: "x-name"}, nil); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown user: expected not found, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")

	user, err := env.users.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != alice.ID {
		t.Errorf("logged in as %q, want %q", user.ID, alice.ID)
	}

	if _, err := env.users.Login(ctx, "nobody"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown username: expected not found, got %v", err)
	}
}

func TestGetUserHydratesLists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	own := env.createList(t, "Groceries", models.ListTypeCheck, alice.ID)
	shared := env.createList(t, "Pantry", models.ListTypeImageCount, bob.ID)
	if _, err := env.lists.AddMember(ctx, shared.ID, alice.ID); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	user, err := env.users.Get(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(user.Lists) != 2 {
		t.Fatalf("accessible lists = %d, want 2", len(user.Lists))
	}
	if user.Lists[0].ID != own.ID || user.Lists[1].ID != shared.ID {
		t.Errorf("unexpected list order: %q, %q", user.Lists[0].ID, user.Lists[1].ID)
	}
}

func TestImageRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	image, err := env.images.Store(ctx, models.ImageUpload{Data: []byte{0x89, 0x50}, MimeType: "image/png"})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	fetched, err := env.images.Get(ctx, image.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.MimeType != "image/png" || len(fetched.Data) != 2 {
		t.Errorf("fetched = (%q, %d bytes)", fetched.MimeType, len(fetched.Data))
	}

	if _, err := env.images.Get(ctx, "missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown image: expected not found, got %v", err)
	}
}
