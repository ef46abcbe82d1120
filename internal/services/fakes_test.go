package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/robotteam/clubserver/internal/mq"
	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]types.User
	next  int
}

func newMemUsers(users ...types.User) *memUsers {
	m := &memUsers{users: map[string]types.User{}}
	for _, u := range users {
		m.next++
		u.ID = m.next
		m.users[u.Username] = u
	}
	return m
}

func (m *memUsers) List(ctx context.Context) ([]types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *memUsers) Create(ctx context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return types.User{}, store.ErrConflict
	}
	m.next++
	user.ID = m.next
	user.CreatedAt = time.Now()
	m.users[user.Username] = user
	return user, nil
}

func (m *memUsers) SetAdmin(ctx context.Context, username string, admin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return store.ErrNotFound
	}
	u.IsAdmin = admin
	m.users[username] = u
	return nil
}

func (m *memUsers) SetPassword(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = password
	m.users[username] = u
	return nil
}

func (m *memUsers) Delete(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, username)
	return nil
}

type memSettings struct {
	rows map[string]types.RobotSettings
	err  error
}

func (m *memSettings) Get(ctx context.Context, robot string) (types.RobotSettings, error) {
	if m.err != nil {
		return types.RobotSettings{}, m.err
	}
	s, ok := m.rows[robot]
	if !ok {
		return types.RobotSettings{}, store.ErrNotFound
	}
	return s, nil
}

func (m *memSettings) Upsert(ctx context.Context, settings types.RobotSettings) (types.RobotSettings, error) {
	if m.rows == nil {
		m.rows = map[string]types.RobotSettings{}
	}
	settings.UpdatedAt = time.Now()
	m.rows[settings.Robot] = settings
	return settings, nil
}

type memTrials struct {
	rows []types.TrialTime
}

func (m *memTrials) List(ctx context.Context) ([]types.TrialTime, error) {
	return append([]types.TrialTime(nil), m.rows...), nil
}

func (m *memTrials) ListByRobot(ctx context.Context, robot string) ([]types.TrialTime, error) {
	var out []types.TrialTime
	for _, t := range m.rows {
		if t.Robot == robot {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTrials) Create(ctx context.Context, trial types.TrialTime) (types.TrialTime, error) {
	trial.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, trial)
	return trial, nil
}

func (m *memTrials) Delete(ctx context.Context, robot string, id int64) error {
	for i, t := range m.rows {
		if t.ID == id && t.Robot == robot {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type memNotes struct {
	rows map[int64]types.Note
	next int64
}

func (m *memNotes) List(ctx context.Context) ([]types.Note, error) {
	out := make([]types.Note, 0, len(m.rows))
	for _, n := range m.rows {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memNotes) Get(ctx context.Context, id int64) (types.Note, error) {
	n, ok := m.rows[id]
	if !ok {
		return types.Note{}, store.ErrNotFound
	}
	return n, nil
}

func (m *memNotes) Create(ctx context.Context, note types.Note) (types.Note, error) {
	if m.rows == nil {
		m.rows = map[int64]types.Note{}
	}
	m.next++
	note.ID = m.next
	note.CreatedAt = time.Now()
	note.LastModifiedAt = nil
	m.rows[note.ID] = note
	return note, nil
}

func (m *memNotes) Update(ctx context.Context, note types.Note) (types.Note, error) {
	if _, ok := m.rows[note.ID]; !ok {
		return types.Note{}, store.ErrNotFound
	}
	now := time.Now()
	note.LastModifiedAt = &now
	m.rows[note.ID] = note
	return note, nil
}

func (m *memNotes) Delete(ctx context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memMedia struct {
	rows      map[int64]types.MediaItem
	next      int64
	createErr error
}

func (m *memMedia) List(ctx context.Context) ([]types.MediaItem, error) {
	out := make([]types.MediaItem, 0, len(m.rows))
	for _, it := range m.rows {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memMedia) ListMissingURL(ctx context.Context, limit int) ([]types.MediaItem, error) {
	var out []types.MediaItem
	for _, it := range m.rows {
		if it.URL == "" && it.StorageKey != "" {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMedia) Get(ctx context.Context, id int64) (types.MediaItem, error) {
	it, ok := m.rows[id]
	if !ok {
		return types.MediaItem{}, store.ErrNotFound
	}
	return it, nil
}

func (m *memMedia) Create(ctx context.Context, item types.MediaItem) (types.MediaItem, error) {
	if m.createErr != nil {
		return types.MediaItem{}, m.createErr
	}
	if m.rows == nil {
		m.rows = map[int64]types.MediaItem{}
	}
	m.next++
	item.ID = m.next
	item.UploadedAt = time.Now()
	m.rows[item.ID] = item
	return item, nil
}

func (m *memMedia) UpdateLocation(ctx context.Context, id int64, storageKey, url string) error {
	it, ok := m.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	it.StorageKey = storageKey
	it.URL = url
	m.rows[id] = it
	return nil
}

func (m *memMedia) Delete(ctx context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memBlobs struct {
	objects   map[string][]byte
	deleteErr error
	deleted   []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (b *memBlobs) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[key] = data
	return nil
}

func (b *memBlobs) Delete(ctx context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	if b.deleteErr != nil {
		return b.deleteErr
	}
	if _, ok := b.objects[key]; !ok {
		return errors.New("no such object")
	}
	delete(b.objects, key)
	return nil
}

func (b *memBlobs) PublicURL(key string) string {
	return "https://cdn.example.test/uploads/" + key
}

type memMessages struct {
	rows []types.AdminMessage
	next int64
}

func (m *memMessages) List(ctx context.Context) ([]types.AdminMessage, error) {
	out := make([]types.AdminMessage, len(m.rows))
	for i := range m.rows {
		out[len(m.rows)-1-i] = m.rows[i]
	}
	return out, nil
}

func (m *memMessages) Create(ctx context.Context, msg types.AdminMessage) (types.AdminMessage, error) {
	m.next++
	msg.ID = m.next
	msg.CreatedAt = time.Now()
	m.rows = append(m.rows, msg)
	return msg, nil
}

func (m *memMessages) Delete(ctx context.Context, id int64) error {
	for i, msg := range m.rows {
		if msg.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type capturedEvents struct {
	mu     sync.Mutex
	events []mq.Event
}

func (c *capturedEvents) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	ev, err := mq.DecodeEvent(mq.Message{Data: data})
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return "id", nil
}

func (c *capturedEvents) Subscribe(ctx context.Context, channel string, handler mq.Handler) error {
	return nil
}

func (c *capturedEvents) Close() error { return nil }

func (c *capturedEvents) publisher() *mq.Publisher {
	return mq.NewPublisher(mq.New(c), "test-events")
}

func (c *capturedEvents) kinds() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Type)
	}
	return out
}

type memAnnouncements struct {
	rows []types.Announcement
	next int64
}

func (m *memAnnouncements) List(ctx context.Context) ([]types.Announcement, error) {
	return append([]types.Announcement(nil), m.rows...), nil
}

func (m *memAnnouncements) Create(ctx context.Context, a types.Announcement) (types.Announcement, error) {
	m.next++
	a.ID = m.next
	a.CreatedAt = time.Now()
	m.rows = append(m.rows, a)
	return a, nil
}

func (m *memAnnouncements) Delete(ctx context.Context, id int64) error {
	for i, a := range m.rows {
		if a.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
