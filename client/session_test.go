package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
)

type mockAuth struct {
	hasSession bool
	checkErr   error
	checkDelay time.Duration

	signInErr  error
	signOutErr error
}

func (m *mockAuth) SignIn(ctx context.Context, email, password string) error {
	return m.signInErr
}

func (m *mockAuth) SignOut(ctx context.Context) error {
	return m.signOutErr
}

func (m *mockAuth) HasSession(ctx context.Context) (bool, error) {
	if m.checkDelay > 0 {
		select {
		case <-time.After(m.checkDelay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return m.hasSession, m.checkErr
}

func TestSessionInitialStateIsUnknown(t *testing.T) {
	session := NewSession(&mockAuth{}, NewStore(&mockGateway{}))
	assert.Equal(t, StateUnknown, session.State())
}

func TestBootstrap(t *testing.T) {
	t.Run("existing session authenticates and loads the store", func(t *testing.T) {
		gw := &mockGateway{pets: twoPets()}
		store := NewStore(gw)
		session := NewSession(&mockAuth{hasSession: true}, store)

		state := session.Bootstrap(context.Background())
		assert.Equal(t, StateAuthenticated, state)
		assert.Len(t, store.Pets(), 2)
	})

	t.Run("no session resolves unauthenticated", func(t *testing.T) {
		session := NewSession(&mockAuth{hasSession: false}, NewStore(&mockGateway{}))
		assert.Equal(t, StateUnauthenticated, session.Bootstrap(context.Background()))
	})

	t.Run("provider error resolves unauthenticated", func(t *testing.T) {
		auth := &mockAuth{hasSession: true, checkErr: errors.New("unreachable")}
		session := NewSession(auth, NewStore(&mockGateway{}))
		assert.Equal(t, StateUnauthenticated, session.Bootstrap(context.Background()))
	})

	t.Run("hanging provider resolves within the timeout", func(t *testing.T) {
		auth := &mockAuth{hasSession: true, checkDelay: 10 * time.Second}
		session := NewSession(auth, NewStore(&mockGateway{}))
		session.SetBootstrapTimeout(50 * time.Millisecond)

		start := time.Now()
		state := session.Bootstrap(context.Background())
		assert.Equal(t, StateUnauthenticated, state)
		assert.Less(t, time.Since(start), 5*time.Second, "bootstrap must not wait for the provider")
	})
}

func TestSignInLoadsStore(t *testing.T) {
	gw := &mockGateway{pets: twoPets()}
	store := NewStore(gw)
	session := NewSession(&mockAuth{}, store)

	require.NoError(t, session.SignIn(context.Background(), "jane@example.com", "password"))
	assert.Equal(t, StateAuthenticated, session.State())
	assert.Len(t, store.Pets(), 2)
}

func TestSignInFailureKeepsState(t *testing.T) {
	session := NewSession(&mockAuth{signInErr: errors.New("bad credentials")}, NewStore(&mockGateway{}))
	assert.Error(t, session.SignIn(context.Background(), "jane@example.com", "wrong"))
	assert.Equal(t, StateUnknown, session.State())
}

func TestSignOutClearsStore(t *testing.T) {
	gw := &mockGateway{
		pets: twoPets(),
		apps: []models.AdoptionApplication{{PetName: "Buddy"}},
	}
	store := NewStore(gw)
	session := NewSession(&mockAuth{}, store)
	require.NoError(t, session.SignIn(context.Background(), "jane@example.com", "password"))

	require.NoError(t, session.SignOut(context.Background()))
	assert.Equal(t, StateUnauthenticated, session.State())
	assert.Empty(t, store.Pets())
	assert.Empty(t, store.Applications())
}

// A failed revocation call still transitions locally; holding on to a dead
// session would strand the user.
func TestSignOutTransitionsEvenOnError(t *testing.T) {
	store := NewStore(&mockGateway{pets: twoPets()})
	session := NewSession(&mockAuth{signOutErr: errors.New("server down")}, store)
	require.NoError(t, session.SignIn(context.Background(), "jane@example.com", "password"))

	assert.Error(t, session.SignOut(context.Background()))
	assert.Equal(t, StateUnauthenticated, session.State())
	assert.Empty(t, store.Pets())
}
