package handlers

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
)

type userTable struct {
	mu    sync.Mutex
	users map[string]types.User
}

func newUserTable(users ...types.User) *userTable {
	t := &userTable{users: map[string]types.User{}}
	for i, u := range users {
		u.ID = i + 1
		t.users[u.Username] = u
	}
	return t
}

func (t *userTable) List(ctx context.Context) ([]types.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]types.User, 0, len(t.users))
	for _, u := range t.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *userTable) GetByUsername(ctx context.Context, username string) (types.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return u, nil
}

func (t *userTable) Count(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.users), nil
}

func (t *userTable) Create(ctx context.Context, user types.User) (types.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.users[user.Username]; ok {
		return types.User{}, store.ErrConflict
	}
	user.ID = len(t.users) + 100
	t.users[user.Username] = user
	return user, nil
}

func (t *userTable) SetAdmin(ctx context.Context, username string, admin bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.users[username]
	if !ok {
		return store.ErrNotFound
	}
	u.IsAdmin = admin
	t.users[username] = u
	return nil
}

func (t *userTable) SetPassword(ctx context.Context, username, password string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.users[username]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = password
	t.users[username] = u
	return nil
}

func (t *userTable) Delete(ctx context.Context, username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.users[username]; !ok {
		return store.ErrNotFound
	}
	delete(t.users, username)
	return nil
}

type noteTable struct {
	mu   sync.Mutex
	rows map[int64]types.Note
	next int64
}

func (t *noteTable) List(ctx context.Context) ([]types.Note, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]types.Note, 0, len(t.rows))
	for _, n := range t.rows {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (t *noteTable) Get(ctx context.Context, id int64) (types.Note, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.rows[id]
	if !ok {
		return types.Note{}, store.ErrNotFound
	}
	return n, nil
}

func (t *noteTable) Create(ctx context.Context, note types.Note) (types.Note, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rows == nil {
		t.rows = map[int64]types.Note{}
	}
	t.next++
	note.ID = t.next
	note.CreatedAt = time.Now()
	t.rows[note.ID] = note
	return note, nil
}

func (t *noteTable) Update(ctx context.Context, note types.Note) (types.Note, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	note.LastModifiedAt = &now
	t.rows[note.ID] = note
	return note, nil
}

func (t *noteTable) Delete(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

type messageTable struct {
	mu   sync.Mutex
	rows []types.AdminMessage
	next int64
}

func (t *messageTable) List(ctx context.Context) ([]types.AdminMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]types.AdminMessage, 0, len(t.rows))
	for i := len(t.rows) - 1; i >= 0; i-- {
		out = append(out, t.rows[i])
	}
	return out, nil
}

func (t *messageTable) Create(ctx context.Context, m types.AdminMessage) (types.AdminMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	m.ID = t.next
	m.CreatedAt = time.Now()
	t.rows = append(t.rows, m)
	return m, nil
}

func (t *messageTable) Delete(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, m := range t.rows {
		if m.ID == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type mediaTable struct {
	mu   sync.Mutex
	rows []types.MediaItem
}

func (t *mediaTable) List(ctx context.Context) ([]types.MediaItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]types.MediaItem(nil), t.rows...), nil
}

func (t *mediaTable) ListMissingURL(ctx context.Context, limit int) ([]types.MediaItem, error) {
	return nil, nil
}

func (t *mediaTable) Get(ctx context.Context, id int64) (types.MediaItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, it := range t.rows {
		if it.ID == id {
			return it, nil
		}
	}
	return types.MediaItem{}, store.ErrNotFound
}

func (t *mediaTable) Create(ctx context.Context, item types.MediaItem) (types.MediaItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item.ID = int64(len(t.rows) + 1)
	t.rows = append(t.rows, item)
	return item, nil
}

func (t *mediaTable) UpdateLocation(ctx context.Context, id int64, storageKey, url string) error {
	return nil
}

func (t *mediaTable) Delete(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, it := range t.rows {
		if it.ID == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type blobBucket struct {
	mu      sync.Mutex
	objects map[string]int
}

func (b *blobBucket) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.objects == nil {
		b.objects = map[string]int{}
	}
	b.objects[key] = int(n)
	return nil
}

func (b *blobBucket) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *blobBucket) PublicURL(key string) string {
	return "https://cdn.example.test/" + key
}

func (b *blobBucket) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}
