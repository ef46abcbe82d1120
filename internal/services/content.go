package services

import (
	"context"

	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/mq"
	"github.com/robotteam/clubserver/types"
)

type AnnouncementRepository interface {
	List(ctx context.Context) ([]types.Announcement, error)
	Create(ctx context.Context, a types.Announcement) (types.Announcement, error)
	Delete(ctx context.Context, id int64) error
}

type AnnouncementService struct {
	repo AnnouncementRepository
}

func NewAnnouncementService(repo AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

func (s *AnnouncementService) List(ctx context.Context) ([]types.Announcement, error) {
	return s.repo.List(ctx)
}

func (s *AnnouncementService) Create(ctx context.Context, author, title, content string) (types.Announcement, error) {
	if blank(title, content) {
		return types.Announcement{}, invalid("title and content are required")
	}
	return s.repo.Create(ctx, types.Announcement{Title: title, Content: content, CreatedBy: author})
}

func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

type NoteRepository interface {
	List(ctx context.Context) ([]types.Note, error)
	Get(ctx context.Context, id int64) (types.Note, error)
	Create(ctx context.Context, note types.Note) (types.Note, error)
	Update(ctx context.Context, note types.Note) (types.Note, error)
	Delete(ctx context.Context, id int64) error
}

type NoteService struct {
	repo NoteRepository
}

func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

func (s *NoteService) List(ctx context.Context) ([]types.Note, error) {
	return s.repo.List(ctx)
}

func (s *NoteService) Create(ctx context.Context, author, title, content string) (types.Note, error) {
	if blank(title, content) {
		return types.Note{}, invalid("title and content are required")
	}
	return s.repo.Create(ctx, types.Note{Title: title, Content: content, CreatedBy: author})
}

// Update rewrites a note's title and content. Only the author or an admin
// may do so; the author itself never changes.
func (s *NoteService) Update(ctx context.Context, identity *types.Identity, id int64, title, content string) (types.Note, error) {
	if blank(title, content) {
		return types.Note{}, invalid("title and content are required")
	}

	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Note{}, err
	}
	if err := auth.RequireOwnerOrElevated(identity, note.CreatedBy); err != nil {
		return types.Note{}, err
	}

	note.Title = title
	note.Content = content
	return s.repo.Update(ctx, note)
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

type AdminMessageRepository interface {
	List(ctx context.Context) ([]types.AdminMessage, error)
	Create(ctx context.Context, m types.AdminMessage) (types.AdminMessage, error)
	Delete(ctx context.Context, id int64) error
}

// AdminMessageService manages broadcast messages. Listing is newest first;
// deleting a message is how a client marks it delivered.
type AdminMessageService struct {
	repo   AdminMessageRepository
	events *mq.Publisher
}

func NewAdminMessageService(repo AdminMessageRepository, events *mq.Publisher) *AdminMessageService {
	return &AdminMessageService{repo: repo, events: events}
}

func (s *AdminMessageService) List(ctx context.Context) ([]types.AdminMessage, error) {
	return s.repo.List(ctx)
}

func (s *AdminMessageService) Post(ctx context.Context, sender, message string) (types.AdminMessage, error) {
	if blank(message) {
		return types.AdminMessage{}, invalid("message is required")
	}
	created, err := s.repo.Create(ctx, types.AdminMessage{Message: message, SentBy: sender})
	if err != nil {
		return types.AdminMessage{}, err
	}

	s.events.Emit(ctx, mq.Event{
		Type:    mq.EventAdminMessagePosted,
		Actor:   sender,
		Subject: created.Message,
	})
	return created, nil
}

func (s *AdminMessageService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
