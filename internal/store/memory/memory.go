// Package memory provides an in-memory implementation of the persistence
// store, used for tests and ephemeral environments. Entities live in id-keyed
// maps behind one mutex; insertion order is tracked so reads come back in
// creation order without a real ORDER BY.
package memory

import (
	"context"
	"sort"
	"sync"

	"shared-lists/internal/models"
	"shared-lists/internal/store"
)

var _ store.Store = (*Store)(nil)

type userRec struct {
	user models.User
	seq  int64
}

type listRec struct {
	list models.List
	seq  int64
}

type categoryRec struct {
	category models.Category
	seq      int64
}

type itemRec struct {
	item models.Item
	seq  int64
}

type Store struct {
	mu            sync.RWMutex
	seq           int64
	users         map[string]userRec
	lists         map[string]listRec
	members       map[string][]string // listID -> userIDs in join order
	categories    map[string]categoryRec
	items         map[string]itemRec
	notifications []models.Notification // append-only
	images        map[string]models.Image
}

func New() *Store {
	return &Store{
		users:      make(map[string]userRec),
		lists:      make(map[string]listRec),
		members:    make(map[string][]string),
		categories: make(map[string]categoryRec),
		items:      make(map[string]itemRec),
		images:     make(map[string]models.Image),
	}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func copyUser(u models.User) models.User {
	out := u
	if u.ProfileImageID != nil {
		id := *u.ProfileImageID
		out.ProfileImageID = &id
	}
	out.Lists = nil
	return out
}

func copyItem(it models.Item) models.Item {
	out := it
	if it.CategoryID != nil {
		v := *it.CategoryID
		out.CategoryID = &v
	}
	if it.Amount != nil {
		v := *it.Amount
		out.Amount = &v
	}
	if it.ImageID != nil {
		v := *it.ImageID
		out.ImageID = &v
	}
	if it.Checked != nil {
		v := *it.Checked
		out.Checked = &v
	}
	return out
}

// Users

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = userRec{user: copyUser(*user), seq: s.nextSeq()}
	return nil
}

func (s *Store) UserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := copyUser(rec.user)
	return &u, nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if rec.user.Username == username {
			u := copyUser(rec.user)
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[user.ID]
	if !ok {
		return store.ErrNotFound
	}
	rec.user = copyUser(*user)
	s.users[user.ID] = rec
	return nil
}

func (s *Store) Users(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]userRec, 0, len(s.users))
	for _, rec := range s.users {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, copyUser(rec.user))
	}
	return out, nil
}

// Lists

func (s *Store) CreateList(_ context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *list
	stored.Members, stored.Categories, stored.Items = nil, nil, nil
	s.lists[list.ID] = listRec{list: stored, seq: s.nextSeq()}
	return nil
}

// hydrate assembles the full aggregate under a read lock already held by the
// caller.
func (s *Store) hydrate(rec listRec) models.List {
	list := rec.list
	for _, userID := range s.members[list.ID] {
		if urec, ok := s.users[userID]; ok {
			list.Members = append(list.Members, copyUser(urec.user))
		}
	}

	var crecs []categoryRec
	for _, crec := range s.categories {
		if crec.category.ListID == list.ID {
			crecs = append(crecs, crec)
		}
	}
	sort.Slice(crecs, func(i, j int) bool { return crecs[i].seq < crecs[j].seq })
	for _, crec := range crecs {
		list.Categories = append(list.Categories, crec.category)
	}

	var irecs []itemRec
	for _, irec := range s.items {
		if irec.item.ListID == list.ID {
			irecs = append(irecs, irec)
		}
	}
	sort.Slice(irecs, func(i, j int) bool { return irecs[i].seq < irecs[j].seq })
	for _, irec := range irecs {
		list.Items = append(list.Items, copyItem(irec.item))
	}
	return list
}

func (s *Store) ListByID(_ context.Context, id string) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.lists[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	list := s.hydrate(rec)
	return &list, nil
}

func (s *Store) ListByShareCode(_ context.Context, code string) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.sortedLists()
	for _, rec := range recs {
		if rec.list.ShareCode == code {
			list := s.hydrate(rec)
			return &list, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) sortedLists() []listRec {
	recs := make([]listRec, 0, len(s.lists))
	for _, rec := range s.lists {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	return recs
}

func (s *Store) Lists(_ context.Context) ([]models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.sortedLists()
	out := make([]models.List, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.hydrate(rec))
	}
	return out, nil
}

func (s *Store) ListsForUser(_ context.Context, userID string) ([]models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.List
	for _, rec := range s.sortedLists() {
		for _, memberID := range s.members[rec.list.ID] {
			if memberID == userID {
				out = append(out, s.hydrate(rec))
				break
			}
		}
	}
	return out, nil
}

func (s *Store) UpdateList(_ context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lists[list.ID]
	if !ok {
		return store.ErrNotFound
	}
	stored := *list
	stored.Members, stored.Categories, stored.Items = nil, nil, nil
	rec.list = stored
	s.lists[list.ID] = rec
	return nil
}

func (s *Store) DeleteListTree(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[id]; !ok {
		return store.ErrNotFound
	}

	// Leaves first: notifications, items, categories, membership, list. The
	// whole sweep runs under one lock so readers never observe a partial
	// cascade.
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ListID == nil || *n.ListID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept

	for itemID, rec := range s.items {
		if rec.item.ListID == id {
			delete(s.items, itemID)
		}
	}
	for categoryID, rec := range s.categories {
		if rec.category.ListID == id {
			delete(s.categories, categoryID)
		}
	}
	delete(s.members, id)
	delete(s.lists, id)
	return nil
}

// Membership

func (s *Store) AddMember(_ context.Context, listID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[listID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return store.ErrNotFound
	}
	for _, memberID := range s.members[listID] {
		if memberID == userID {
			return nil
		}
	}
	s.members[listID] = append(s.members[listID], userID)
	return nil
}

func (s *Store) RemoveMember(_ context.Context, listID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[listID]; !ok {
		return store.ErrNotFound
	}
	current := s.members[listID]
	kept := current[:0]
	for _, memberID := range current {
		if memberID != userID {
			kept = append(kept, memberID)
		}
	}
	s.members[listID] = kept
	return nil
}

// Categories

func (s *Store) CreateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[category.ListID]; !ok {
		return store.ErrNotFound
	}
	s.categories[category.ID] = categoryRec{category: *category, seq: s.nextSeq()}
	return nil
}

func (s *Store) CategoryByID(_ context.Context, listID, categoryID string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.categories[categoryID]
	if !ok || rec.category.ListID != listID {
		return nil, store.ErrNotFound
	}
	category := rec.category
	return &category, nil
}

func (s *Store) UpdateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.categories[category.ID]
	if !ok || rec.category.ListID != category.ListID {
		return store.ErrNotFound
	}
	rec.category = *category
	s.categories[category.ID] = rec
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, listID, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.categories[categoryID]
	if !ok || rec.category.ListID != listID {
		return store.ErrNotFound
	}
	delete(s.categories, categoryID)
	return nil
}

// Items

func (s *Store) CreateItem(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[item.ListID]; !ok {
		return store.ErrNotFound
	}
	s.items[item.ID] = itemRec{item: copyItem(*item), seq: s.nextSeq()}
	return nil
}

func (s *Store) ItemByID(_ context.Context, listID, itemID string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[itemID]
	if !ok || rec.item.ListID != listID {
		return nil, store.ErrNotFound
	}
	item := copyItem(rec.item)
	return &item, nil
}

func (s *Store) UpdateItem(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[item.ID]
	if !ok || rec.item.ListID != item.ListID {
		return store.ErrNotFound
	}
	rec.item = copyItem(*item)
	s.items[item.ID] = rec
	return nil
}

func (s *Store) DeleteItem(_ context.Context, listID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[itemID]
	if !ok || rec.item.ListID != listID {
		return store.ErrNotFound
	}
	delete(s.items, itemID)
	return nil
}

// Notifications

func (s *Store) CreateNotifications(_ context.Context, notifications []models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range notifications {
		n.List = nil
		if n.ListID != nil {
			id := *n.ListID
			n.ListID = &id
		}
		s.notifications = append(s.notifications, n)
	}
	return nil
}

func (s *Store) NotificationsForUser(_ context.Context, userID string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Notification
	// Reverse insertion order doubles as created-at descending; batches share
	// a timestamp.
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := s.notifications[i]
		if n.UserID != userID {
			continue
		}
		if n.ListID != nil {
			id := *n.ListID
			n.ListID = &id
			if rec, ok := s.lists[id]; ok {
				n.List = &models.ListRef{ID: rec.list.ID, Title: rec.list.Title, Type: rec.list.Type}
			}
		}
		out = append(out, n)
	}
	return out, nil
}

// Images

func (s *Store) CreateImage(_ context.Context, image *models.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *image
	stored.Data = append([]byte(nil), image.Data...)
	s.images[image.ID] = stored
	return nil
}

func (s *Store) ImageByID(_ context.Context, id string) (*models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := img
	out.Data = append([]byte(nil), img.Data...)
	return &out, nil
}
