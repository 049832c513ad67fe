package database

import (
	"context"
	"fmt"
)

// Migrate creates the schema if it is missing. Cascades are deliberately not
// delegated to ON DELETE CASCADE: the list manager deletes leaves-first so the
// dependency order stays explicit in one place.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			profile_image_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS images (
			id UUID PRIMARY KEY,
			data BYTEA NOT NULL,
			mime_type VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS lists (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type VARCHAR(20) NOT NULL CHECK (type IN ('image_count', 'check')),
			share_code VARCHAR(6) NOT NULL,
			creator_id UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS list_members (
			list_id UUID NOT NULL REFERENCES lists(id),
			user_id UUID NOT NULL REFERENCES users(id),
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (list_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			list_id UUID NOT NULL REFERENCES lists(id),
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS items (
			id UUID PRIMARY KEY,
			list_id UUID NOT NULL REFERENCES lists(id),
			category_id UUID REFERENCES categories(id),
			title VARCHAR(255) NOT NULL,
			amount INTEGER,
			image_id UUID,
			checked BOOLEAN,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			list_id UUID REFERENCES lists(id),
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_lists_share_code ON lists(share_code);
		CREATE INDEX IF NOT EXISTS idx_list_members_user_id ON list_members(user_id);
		CREATE INDEX IF NOT EXISTS idx_categories_list_id ON categories(list_id);
		CREATE INDEX IF NOT EXISTS idx_items_list_id ON items(list_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_list_id ON notifications(list_id);
	`)

	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
