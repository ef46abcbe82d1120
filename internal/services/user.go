package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/robotteam/clubserver/internal/mq"
	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
	"github.com/samber/lo"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	SetAdmin(ctx context.Context, username string, admin bool) error
	SetPassword(ctx context.Context, username, password string) error
	Delete(ctx context.Context, username string) error
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo   UserRepository
	events *mq.Publisher
}

func NewUserService(repo UserRepository, events *mq.Publisher) *UserService {
	return &UserService{repo: repo, events: events}
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Authenticate checks a username/password pair. Passwords are opaque strings
// compared verbatim; an unknown user and a wrong password are reported alike.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return types.User{}, invalid("username and password are required")
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}
	if user.Password != password {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// List returns every visible account. Hidden accounts are never listed.
func (s *UserService) List(ctx context.Context) ([]types.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := lo.Filter(users, func(u types.User, _ int) bool { return !u.Hidden })
	return lo.Map(visible, func(u types.User, _ int) types.UserSummary {
		return types.UserSummary{Username: u.Username, IsAdmin: u.IsAdmin}
	}), nil
}

// Create adds a regular, visible member. The prior lookup only gives a
// friendly message; the unique constraint on username is authoritative.
func (s *UserService) Create(ctx context.Context, username, password string) (types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return types.User{}, invalid("username is required")
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return types.User{}, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{Username: username, Password: password})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.User{}, ErrUserExists
		}
		return types.User{}, err
	}
	return user, nil
}

// Delete removes a member account. Admin accounts are rejected no matter who asks.
func (s *UserService) Delete(ctx context.Context, username string) error {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return ErrAdminUndeletable
	}
	return s.repo.Delete(ctx, username)
}

func (s *UserService) Promote(ctx context.Context, actor, username string) error {
	return s.setRole(ctx, actor, username, true)
}

func (s *UserService) Demote(ctx context.Context, actor, username string) error {
	return s.setRole(ctx, actor, username, false)
}

func (s *UserService) setRole(ctx context.Context, actor, username string, admin bool) error {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.IsAdmin == admin {
		if admin {
			return ErrAlreadyAdmin
		}
		return ErrNotAdmin
	}
	if err := s.repo.SetAdmin(ctx, username, admin); err != nil {
		return err
	}

	s.events.Emit(ctx, mq.Event{
		Type:    mq.EventUserRoleChanged,
		Actor:   actor,
		Subject: username,
		Detail:  map[string]string{"admin": fmt.Sprint(admin)},
	})
	return nil
}

// ChangePassword replaces the password after checking the current one.
// Sessions issued earlier stay valid.
func (s *UserService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return invalid("current and new password are required")
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWrongPassword
		}
		return err
	}
	if user.Password != oldPassword {
		return ErrWrongPassword
	}
	return s.repo.SetPassword(ctx, username, newPassword)
}

// SeedDefaults inserts accounts when the users table is empty and reports how
// many were created.
func (s *UserService) SeedDefaults(ctx context.Context, accounts []types.User) (int, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	if total > 0 {
		return 0, nil
	}

	created := 0
	for _, account := range accounts {
		if _, err := s.repo.Create(ctx, account); err != nil {
			if errors.Is(err, store.ErrConflict) {
				continue
			}
			return created, fmt.Errorf("seed user %s: %w", account.Username, err)
		}
		created++
		log.Info("seeded default user", "username", account.Username, "admin", account.IsAdmin, "hidden", account.Hidden)
	}
	return created, nil
}
