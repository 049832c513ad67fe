package services

import (
	"context"
	"testing"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
)

func TestCreateItemImageCountDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, "Pantry", models.ListTypeImageCount, alice.ID)
	uncategorized := list.Categories[0]

	item, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{
		Title:      "Milk",
		Amount:     intPtr(2),
		CategoryID: uncategorized.ID,
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Amount == nil || *item.Amount != 2 {
		t.Errorf("amount = %v, want 2", item.Amount)
	}
	if item.Checked != nil {
		t.Errorf("image_count item carries checked = %v", *item.Checked)
	}
	if item.CategoryID == nil || *item.CategoryID != uncategorized.ID {
		t.Errorf("category id = %v, want %q", item.CategoryID, uncategorized.ID)
	}

	// Amount defaults to 1 when absent.
	defaulted, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Eggs"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if defaulted.Amount == nil || *defaulted.Amount != 1 {
		t.Errorf("defaulted amount = %v, want 1", defaulted.Amount)
	}
}

func TestCreateItemCheckDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, "Todos", models.ListTypeCheck, alice.ID)

	item, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Vacuum"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Checked == nil || *item.Checked {
		t.Errorf("checked = %v, want false", item.Checked)
	}
	if item.Amount != nil {
		t.Errorf("check item carries amount = %v", *item.Amount)
	}
	if item.ImageID != nil {
		t.Errorf("check item carries image id = %v", *item.ImageID)
	}
}

func TestCreateItemTypeValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	checkList := env.createList(t, "Todos", models.ListTypeCheck, alice.ID)
	countList := env.createList(t, "Pantry", models.ListTypeImageCount, alice.ID)

	if _, err := env.items.Create(ctx, checkList.ID, models.CreateItemRequest{
		Title:  "Vacuum",
		Amount: intPtr(3),
	}, nil); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Errorf("amount on check list: expected invalid argument, got %v", err)
	}
	if _, err := env.items.Create(ctx, checkList.ID, models.CreateItemRequest{Title: "Vacuum"},
		&models.ImageUpload{Data: []byte{1}, MimeType: "image/png"}); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Errorf("image on check list: expected invalid argument, got %v", err)
	}
	if _, err := env.items.Create(ctx, countList.ID, models.CreateItemRequest{
		Title:   "Milk",
		Checked: boolPtr(true),
	}, nil); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Errorf("checked on image_count list: expected invalid argument, got %v", err)
	}
	if _, err := env.items.Create(ctx, "missing", models.CreateItemRequest{Title: "Milk"}, nil); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown list: expected not found, got %v", err)
	}
	if _, err := env.items.Create(ctx, countList.ID, models.CreateItemRequest{
		Title:      "Milk",
		CategoryID: "missing",
	}, nil); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown category: expected not found, got %v", err)
	}
}

func TestCreateItemStoresImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, "Pantry", models.ListTypeImageCount, alice.ID)

	item, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Milk"},
		&models.ImageUpload{Data: []byte("png-bytes"), MimeType: "image/png"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ImageID == nil {
		t.Fatal("image id not attached")
	}
	image, err := env.images.Get(ctx, *item.ImageID)
	if err != nil {
		t.Fatalf("image fetch: %v", err)
	}
	if string(image.Data) != "png-bytes" || image.MimeType != "image/png" {
		t.Errorf("stored image = (%q, %q)", image.Data, image.MimeType)
	}
}

func TestItemLookupIsListScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	first := env.createList(t, "Todos", models.ListTypeCheck, alice.ID)
	second := env.createList(t, "Chores", models.ListTypeCheck, alice.ID)

	item, err := env.items.Create(ctx, first.ID, models.CreateItemRequest{Title: "Vacuum"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.items.Get(ctx, second.ID, item.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("cross-list lookup: expected not found, got %v", err)
	}
}

func TestUpdateItemAppliesFalsyValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	countList := env.createList(t, "Pantry", models.ListTypeImageCount, alice.ID)
	checkList := env.createList(t, "Todos", models.ListTypeCheck, alice.ID)

	countItem, err := env.items.Create(ctx, countList.ID, models.CreateItemRequest{Title: "Milk", Amount: intPtr(5)}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	checkItem, err := env.items.Create(ctx, checkList.ID, models.CreateItemRequest{Title: "Vacuum", Checked: boolPtr(true)}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// amount=0 is present-but-falsy and must still apply.
	updated, err := env.items.Update(ctx, countList.ID, countItem.ID, models.UpdateItemRequest{Amount: intPtr(0)}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Amount == nil || *updated.Amount != 0 {
		t.Errorf("amount = %v, want 0", updated.Amount)
	}
	if updated.Title != "Milk" {
		t.Errorf("omitted title overwritten: %q", updated.Title)
	}

	// checked=false likewise.
	unchecked, err := env.items.Update(ctx, checkList.ID, checkItem.ID, models.UpdateItemRequest{Checked: boolPtr(false)}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if unchecked.Checked == nil || *unchecked.Checked {
		t.Errorf("checked = %v, want false", unchecked.Checked)
	}
}

func TestUpdateItemValidatesAgainstCurrentListType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, "Todos", models.ListTypeCheck, alice.ID)

	item, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Vacuum"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.items.Update(ctx, list.ID, item.ID, models.UpdateItemRequest{Amount: intPtr(2)}, nil); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestItemMutationsNotifyAllMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	list := env.createList(t, "Todos", models.ListTypeCheck, alice.ID)
	if _, err := env.lists.AddMember(ctx, list.ID, bob.ID); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	item, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Vacuum"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.items.Update(ctx, list.ID, item.ID, models.UpdateItemRequest{Title: "Mop"}, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := env.items.Delete(ctx, list.ID, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// add/update/remove each fan out to both members; alice additionally has
	// the join notification from bob's add.
	if got := env.feed(t, bob.ID); len(got) != 3 {
		t.Errorf("bob notifications = %d, want 3", len(got))
	}
	if got := env.feed(t, alice.ID); len(got) != 4 {
		t.Errorf("alice notifications = %d, want 4", len(got))
	}
}

func TestBulkUpdateMixedResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, "Todos", models.ListTypeCheck, alice.ID)

	item, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Vacuum"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	results, err := env.items.BulkUpdate(ctx, list.ID, []models.BulkUpdateEntry{
		{ItemID: item.ID, Data: models.UpdateItemRequest{Title: "Mop"}},
		{ItemID: "missing", Data: models.UpdateItemRequest{}},
	})
	if err != nil {
		t.Fatalf("BulkUpdate: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Status != "updated" || results[0].Item == nil || results[0].Item.Title != "Mop" {
		t.Errorf("first result = %+v, want updated with new title", results[0])
	}
	if results[1].Error != "Item not found" {
		t.Errorf("second result error = %q, want %q", results[1].Error, "Item not found")
	}

	// The successful entry really was persisted.
	persisted, err := env.items.Get(ctx, list.ID, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if persisted.Title != "Mop" {
		t.Errorf("persisted title = %q, want %q", persisted.Title, "Mop")
	}
}

func TestBulkUpdateUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	list := env.createList(t, "Pantry", models.ListTypeImageCount, alice.ID)

	item, err := env.items.Create(ctx, list.ID, models.CreateItemRequest{Title: "Milk"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	results, err := env.items.BulkUpdate(ctx, list.ID, []models.BulkUpdateEntry{
		{ItemID: item.ID, Data: models.UpdateItemRequest{CategoryID: "missing"}},
	})
	if err != nil {
		t.Fatalf("BulkUpdate: %v", err)
	}
	if results[0].Error != "Category not found" {
		t.Errorf("result error = %q, want %q", results[0].Error, "Category not found")
	}
}

func TestBulkUpdateUnknownList(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.items.BulkUpdate(context.Background(), "missing", nil)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
