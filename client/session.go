package client

import (
	"context"
	"sync"
	"time"
)

// State is the auth lifecycle of a Session.
type State int

const (
	// StateUnknown is the initial state, pending the bootstrap check.
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// DefaultBootstrapTimeout bounds how long Bootstrap waits on the auth
// provider before falling back to unauthenticated.
const DefaultBootstrapTimeout = 2 * time.Second

// Authenticator is the auth provider contract. APIGateway implements it.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	HasSession(ctx context.Context) (bool, error)
}

// Session tracks whether a user is signed in and keeps the Store in step:
// becoming authenticated triggers a load, becoming unauthenticated clears it.
type Session struct {
	auth             Authenticator
	store            *Store
	bootstrapTimeout time.Duration

	mu    sync.Mutex
	state State
}

func NewSession(auth Authenticator, store *Store) *Session {
	return &Session{
		auth:             auth,
		store:            store,
		bootstrapTimeout: DefaultBootstrapTimeout,
		state:            StateUnknown,
	}
}

// SetBootstrapTimeout overrides the bootstrap deadline. Zero or negative
// values are ignored.
func (s *Session) SetBootstrapTimeout(d time.Duration) {
	if d > 0 {
		s.bootstrapTimeout = d
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Bootstrap resolves the initial unknown state. It always reaches a terminal
// state within the bootstrap timeout: if the auth provider hangs or errors,
// the session falls back to unauthenticated rather than loading forever.
func (s *Session) Bootstrap(ctx context.Context) State {
	checkCtx, cancel := context.WithTimeout(ctx, s.bootstrapTimeout)
	defer cancel()

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := s.auth.HasSession(checkCtx)
		done <- result{ok: ok, err: err}
	}()

	authenticated := false
	select {
	case r := <-done:
		authenticated = r.ok && r.err == nil
	case <-checkCtx.Done():
	}

	if !authenticated {
		s.setState(StateUnauthenticated)
		s.store.Clear()
		return StateUnauthenticated
	}

	s.setState(StateAuthenticated)
	// Partial loads are fine; the store keeps whatever arrived
	_ = s.store.Load(ctx)
	return StateAuthenticated
}

// SignIn authenticates and, on success, loads the store.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	if err := s.auth.SignIn(ctx, email, password); err != nil {
		return err
	}
	s.setState(StateAuthenticated)
	return s.store.Load(ctx)
}

// SignOut revokes the session and discards all local state. The local
// transition happens even if the revocation call fails.
func (s *Session) SignOut(ctx context.Context) error {
	err := s.auth.SignOut(ctx)
	s.setState(StateUnauthenticated)
	s.store.Clear()
	return err
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
