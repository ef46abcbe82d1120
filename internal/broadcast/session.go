// Package broadcast delivers admin messages to a logged-in client.
//
// Delivery is consume-once: the client that sees a message first presents it
// and deletes it, so no other client will see it. Concurrent pollers may both
// present the same message before either deletes it.
package broadcast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/robotteam/clubserver/types"
)

// DefaultInterval is the pause between two periodic checks.
const DefaultInterval = 2 * time.Second

// MessageSource lists pending messages newest first and consumes them.
type MessageSource interface {
	ListMessages(ctx context.Context) ([]types.AdminMessage, error)
	DeleteMessage(ctx context.Context, id int64) error
}

// Presenter shows a message to the user.
type Presenter interface {
	Present(msg types.AdminMessage)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(msg types.AdminMessage)

func (f PresenterFunc) Present(msg types.AdminMessage) {
	f(msg)
}

// Session is the polling state of one client session. It is Idle until
// Start and returns to Idle on Stop.
type Session struct {
	source    MessageSource
	presenter Presenter
	interval  time.Duration

	mu         sync.Mutex
	scheduler  gocron.Scheduler
	cancel     context.CancelFunc
	observed   int
	generation uint64
}

func NewSession(source MessageSource, presenter Presenter, interval time.Duration) *Session {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Session{source: source, presenter: presenter, interval: interval}
}

// Start moves the session to Polling. It checks for a pending message right
// away, then schedules periodic checks. Starting a polling session is a no-op.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.scheduler != nil {
		s.mu.Unlock()
		return nil
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLogger(newLogger()))
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.generation++
	gen := s.generation
	s.scheduler = scheduler
	s.cancel = cancel
	s.observed = 0
	s.mu.Unlock()

	if err := s.check(runCtx, gen, true); err != nil {
		log.Warn("initial message check failed", "error", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			if err := s.check(runCtx, gen, false); err != nil && runCtx.Err() == nil {
				log.Warn("message check failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Stop()
		return fmt.Errorf("failed to schedule message checks: %w", err)
	}

	scheduler.Start()
	log.Debug("message polling started", "interval", s.interval)
	return nil
}

// Stop cancels the scheduled checks and resets the observed count. Stopping
// an idle session is a no-op.
func (s *Session) Stop() error {
	s.mu.Lock()
	scheduler, cancel := s.scheduler, s.cancel
	s.scheduler = nil
	s.cancel = nil
	s.observed = 0
	s.generation++
	s.mu.Unlock()

	if scheduler == nil {
		return nil
	}
	cancel()
	log.Debug("message polling stopped")
	return scheduler.Shutdown()
}

// Poll runs one periodic check immediately. It does nothing while Idle.
func (s *Session) Poll(ctx context.Context) error {
	s.mu.Lock()
	polling, gen := s.scheduler != nil, s.generation
	s.mu.Unlock()

	if !polling {
		return nil
	}
	return s.check(ctx, gen, false)
}

// Polling reports whether the session is in the Polling state.
func (s *Session) Polling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler != nil
}

// Observed returns the message count seen by the last effective check.
func (s *Session) Observed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observed
}

// check lists pending messages and consumes the newest one. The first check
// after Start consumes whenever a message exists; later checks only when the
// count grew past the observed one. Results from a stale generation are
// dropped.
func (s *Session) check(ctx context.Context, gen uint64, initial bool) error {
	messages, err := s.source.ListMessages(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return nil
	}
	observed := s.observed
	s.mu.Unlock()

	count := len(messages)
	if count == 0 || (!initial && count <= observed) {
		if initial {
			s.setObserved(gen, count)
		}
		return nil
	}

	newest := messages[0]
	s.presenter.Present(newest)
	deleteErr := s.source.DeleteMessage(ctx, newest.ID)

	s.setObserved(gen, count)
	if deleteErr != nil {
		return fmt.Errorf("consume message %d: %w", newest.ID, deleteErr)
	}
	return nil
}

func (s *Session) setObserved(gen uint64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		s.observed = count
	}
}
