// Package postgres implements the persistence store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shared-lists/internal/database"
	"shared-lists/internal/models"
	"shared-lists/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, username, profile_image_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.ProfileImageID, user.CreatedAt)
	return err
}

func (s *Store) scanUserRow(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.ProfileImageID, &user.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanUserRow(s.db.QueryRow(ctx,
		`SELECT id, username, profile_image_id, created_at FROM users WHERE id = $1`, id))
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUserRow(s.db.QueryRow(ctx,
		`SELECT id, username, profile_image_id, created_at FROM users WHERE username = $1`, username))
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	result, err := s.db.Exec(ctx,
		`UPDATE users SET username = $1, profile_image_id = $2 WHERE id = $3`,
		user.Username, user.ProfileImageID, user.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, username, profile_image_id, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.ProfileImageID, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Lists

func (s *Store) CreateList(ctx context.Context, list *models.List) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO lists (id, title, description, type, share_code, creator_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		list.ID, list.Title, list.Description, list.Type, list.ShareCode, list.CreatorID, list.CreatedAt)
	return err
}

func (s *Store) listBy(ctx context.Context, where string, arg any) (*models.List, error) {
	var list models.List
	err := s.db.QueryRow(ctx,
		`SELECT id, title, description, type, share_code, creator_id, created_at
		 FROM lists WHERE `+where, arg).Scan(
		&list.ID, &list.Title, &list.Description, &list.Type,
		&list.ShareCode, &list.CreatorID, &list.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := s.hydrate(ctx, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *Store) hydrate(ctx context.Context, list *models.List) error {
	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.username, u.profile_image_id, u.created_at
		 FROM users u
		 JOIN list_members lm ON lm.user_id = u.id
		 WHERE lm.list_id = $1
		 ORDER BY lm.joined_at`, list.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.ProfileImageID, &user.CreatedAt); err != nil {
			return err
		}
		list.Members = append(list.Members, user)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	catRows, err := s.db.Query(ctx,
		`SELECT id, list_id, name, created_at FROM categories
		 WHERE list_id = $1 ORDER BY created_at`, list.ID)
	if err != nil {
		return err
	}
	defer catRows.Close()
	for catRows.Next() {
		var category models.Category
		if err := catRows.Scan(&category.ID, &category.ListID, &category.Name, &category.CreatedAt); err != nil {
			return err
		}
		list.Categories = append(list.Categories, category)
	}
	if err := catRows.Err(); err != nil {
		return err
	}

	itemRows, err := s.db.Query(ctx,
		`SELECT id, list_id, category_id, title, amount, image_id, checked, created_at
		 FROM items WHERE list_id = $1 ORDER BY created_at`, list.ID)
	if err != nil {
		return err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.ID, &item.ListID, &item.CategoryID, &item.Title,
			&item.Amount, &item.ImageID, &item.Checked, &item.CreatedAt); err != nil {
			return err
		}
		list.Items = append(list.Items, item)
	}
	return itemRows.Err()
}

func (s *Store) ListByID(ctx context.Context, id string) (*models.List, error) {
	return s.listBy(ctx, "id = $1", id)
}

func (s *Store) ListByShareCode(ctx context.Context, code string) (*models.List, error) {
	// Share codes are not unique by construction; the oldest match wins.
	var id string
	err := s.db.QueryRow(ctx,
		`SELECT id FROM lists WHERE share_code = $1 ORDER BY created_at LIMIT 1`, code).Scan(&id)
	if err != nil {
		return nil, mapErr(err)
	}
	return s.ListByID(ctx, id)
}

func (s *Store) listsWhere(ctx context.Context, query string, args ...any) ([]models.List, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		var list models.List
		if err := rows.Scan(&list.ID, &list.Title, &list.Description, &list.Type,
			&list.ShareCode, &list.CreatorID, &list.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range lists {
		if err := s.hydrate(ctx, &lists[i]); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

func (s *Store) Lists(ctx context.Context) ([]models.List, error) {
	return s.listsWhere(ctx,
		`SELECT id, title, description, type, share_code, creator_id, created_at
		 FROM lists ORDER BY created_at`)
}

func (s *Store) ListsForUser(ctx context.Context, userID string) ([]models.List, error) {
	return s.listsWhere(ctx,
		`SELECT l.id, l.title, l.description, l.type, l.share_code, l.creator_id, l.created_at
		 FROM lists l
		 JOIN list_members lm ON lm.list_id = l.id
		 WHERE lm.user_id = $1
		 ORDER BY l.created_at`, userID)
}

func (s *Store) UpdateList(ctx context.Context, list *models.List) error {
	result, err := s.db.Exec(ctx,
		`UPDATE lists SET title = $1, description = $2 WHERE id = $3`,
		list.Title, list.Description, list.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteListTree(ctx context.Context, id string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Leaves first so no statement ever dangles a reference.
	for _, stmt := range []string{
		`DELETE FROM notifications WHERE list_id = $1`,
		`DELETE FROM items WHERE list_id = $1`,
		`DELETE FROM categories WHERE list_id = $1`,
		`DELETE FROM list_members WHERE list_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}

	result, err := tx.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return tx.Commit(ctx)
}

// Membership

func (s *Store) AddMember(ctx context.Context, listID, userID string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO list_members (list_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (list_id, user_id) DO NOTHING`,
		listID, userID)
	return err
}

func (s *Store) RemoveMember(ctx context.Context, listID, userID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM list_members WHERE list_id = $1 AND user_id = $2`,
		listID, userID)
	return err
}

// Categories

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO categories (id, list_id, name, created_at)
		 VALUES ($1, $2, $3, $4)`,
		category.ID, category.ListID, category.Name, category.CreatedAt)
	return err
}

func (s *Store) CategoryByID(ctx context.Context, listID, categoryID string) (*models.Category, error) {
	var category models.Category
	err := s.db.QueryRow(ctx,
		`SELECT id, list_id, name, created_at FROM categories
		 WHERE id = $1 AND list_id = $2`,
		categoryID, listID).Scan(
		&category.ID, &category.ListID, &category.Name, &category.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &category, nil
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	result, err := s.db.Exec(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2 AND list_id = $3`,
		category.Name, category.ID, category.ListID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, listID, categoryID string) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND list_id = $2`,
		categoryID, listID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Items

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO items (id, list_id, category_id, title, amount, image_id, checked, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.ListID, item.CategoryID, item.Title,
		item.Amount, item.ImageID, item.Checked, item.CreatedAt)
	return err
}

func (s *Store) ItemByID(ctx context.Context, listID, itemID string) (*models.Item, error) {
	var item models.Item
	err := s.db.QueryRow(ctx,
		`SELECT id, list_id, category_id, title, amount, image_id, checked, created_at
		 FROM items WHERE id = $1 AND list_id = $2`,
		itemID, listID).Scan(
		&item.ID, &item.ListID, &item.CategoryID, &item.Title,
		&item.Amount, &item.ImageID, &item.Checked, &item.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &item, nil
}

func (s *Store) UpdateItem(ctx context.Context, item *models.Item) error {
	result, err := s.db.Exec(ctx,
		`UPDATE items SET category_id = $1, title = $2, amount = $3, image_id = $4, checked = $5
		 WHERE id = $6 AND list_id = $7`,
		item.CategoryID, item.Title, item.Amount, item.ImageID, item.Checked,
		item.ID, item.ListID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, listID, itemID string) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM items WHERE id = $1 AND list_id = $2`, itemID, listID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Notifications

func (s *Store) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(
			`INSERT INTO notifications (id, user_id, list_id, message, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			n.ID, n.UserID, n.ListID, n.Message, n.CreatedAt)
	}
	return s.db.SendBatch(ctx, batch).Close()
}

func (s *Store) NotificationsForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := s.db.Query(ctx,
		`SELECT n.id, n.user_id, n.list_id, n.message, n.created_at,
		        l.id, l.title, l.type
		 FROM notifications n
		 LEFT JOIN lists l ON l.id = n.list_id
		 WHERE n.user_id = $1
		 ORDER BY n.created_at DESC, n.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var listID, listTitle, listType *string
		if err := rows.Scan(&n.ID, &n.UserID, &n.ListID, &n.Message, &n.CreatedAt,
			&listID, &listTitle, &listType); err != nil {
			return nil, err
		}
		if listID != nil {
			n.List = &models.ListRef{ID: *listID, Title: *listTitle, Type: *listType}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// Images

func (s *Store) CreateImage(ctx context.Context, image *models.Image) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO images (id, data, mime_type, created_at)
		 VALUES ($1, $2, $3, $4)`,
		image.ID, image.Data, image.MimeType, image.CreatedAt)
	return err
}

func (s *Store) ImageByID(ctx context.Context, id string) (*models.Image, error) {
	var image models.Image
	err := s.db.QueryRow(ctx,
		`SELECT id, data, mime_type, created_at FROM images WHERE id = $1`, id).Scan(
		&image.ID, &image.Data, &image.MimeType, &image.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &image, nil
}
