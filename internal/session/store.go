package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// State is the lifecycle state of a Store
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	// StateFailed means guest bootstrap failed; Initialize may be retried
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// initAttempt is one run of Initialize; waiters block on done and read err
type initAttempt struct {
	done chan struct{}
	err  error
}

// Store owns the current Session. Construct one with NewStore and pass it
// to whatever needs session state.
type Store struct {
	api    domain.SessionAPI
	prefs  domain.Preferences
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	current *Session
	attempt *initAttempt
}

// NewStore creates a store in StateUninitialized
func NewStore(api domain.SessionAPI, prefs domain.Preferences, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:    api,
		prefs:  prefs,
		logger: logger,
		state:  StateUninitialized,
	}
}

// State returns the current lifecycle state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the live session, or ErrSessionNotReady before Initialize succeeds
func (s *Store) Current() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.current == nil {
		return nil, fmt.Errorf("%w (state %s)", domain.ErrSessionNotReady, s.state)
	}
	return s.current, nil
}

// Initialize establishes the session. Only one initialization runs at a time:
// concurrent callers wait for the running one and share its result, and a
// call on a ready store returns nil without doing anything.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateReady:
		s.mu.Unlock()
		return nil
	case StateInitializing:
		attempt := s.attempt
		s.mu.Unlock()
		select {
		case <-attempt.done:
			return attempt.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	attempt := &initAttempt{done: make(chan struct{})}
	s.attempt = attempt
	s.state = StateInitializing
	s.mu.Unlock()

	sess, err := s.bootstrap(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = StateFailed
		s.logger.Error("session initialization failed", "error", err)
	} else {
		s.state = StateReady
		s.current = sess
	}
	attempt.err = err
	close(attempt.done)
	s.mu.Unlock()

	return err
}

// bootstrap rehydrates the persisted guest session or creates a new one.
// A freshly created guest session starts with empty rated lists; only a
// rehydrated one fetches them. Failed fetches leave a list empty, but a
// cancelled ctx fails the attempt so a later Initialize can retry.
func (s *Store) bootstrap(ctx context.Context) (*Session, error) {
	if id, ok := s.prefs.GuestSessionID(); ok && id != "" {
		s.logger.Debug("rehydrating guest session")
		sess := newGuestSession(id)
		sess.initialize(ctx, s.api, s.logger)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rehydrate guest session: %w", err)
		}
		return sess, nil
	}

	id, err := s.api.CreateGuestSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("create guest session: %w", err)
	}
	if id == "" {
		return nil, errors.New("create guest session: empty session id")
	}

	if err := s.prefs.SetGuestSessionID(id); err != nil {
		s.logger.Warn("failed to persist guest session id", "error", err)
	}
	s.logger.Info("created guest session")
	return newGuestSession(id), nil
}

// RefreshRated re-fetches the rated snapshot of a ready guest session and
// swaps it in. Rate and unrate never call it implicitly.
func (s *Store) RefreshRated(ctx context.Context) error {
	current, err := s.Current()
	if err != nil {
		return err
	}
	if !current.IsGuest {
		return nil
	}

	fresh := newGuestSession(current.ID)
	fresh.initialize(ctx, s.api, s.logger)
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == current {
		s.current = fresh
	}
	return nil
}
