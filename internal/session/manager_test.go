package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-couture-api/internal/auth"
	autherrors "go-couture-api/internal/auth/errors"
	sessionMock "go-couture-api/internal/mock/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func tokens(access, refresh string, expires time.Time) auth.TokenResponse {
	return auth.TokenResponse{
		User:         auth.AuthResponse{ID: "u-1", Email: "admin@mbj.test", Name: "Admin", Role: "ADMIN"},
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expires,
	}
}

func setupManager(t *testing.T, saved *Session) (*Manager, *sessionMock.MockAuthenticator, *MemoryStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := sessionMock.NewMockAuthenticator(ctrl)
	store := NewMemoryStore(saved)

	m := NewManager(api, store)
	m.now = func() time.Time { return fixedNow }
	t.Cleanup(m.Close)
	return m, api, store
}

func next(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event")
		return Event{}
	}
}

func TestManager_SignInAndOut(t *testing.T) {
	ctx := context.Background()
	m, api, store := setupManager(t, nil)
	events, stop := m.Subscribe()
	defer stop()

	api.EXPECT().Login(ctx, "admin@mbj.test", "pw").Return(tokens("a1", "r1", fixedNow.Add(15*time.Minute)), nil)

	s, err := m.SignIn(ctx, "admin@mbj.test", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a1", s.AccessToken)

	ev := next(t, events)
	assert.Equal(t, SignedIn, ev.Type)
	require.NotNil(t, ev.Session)
	assert.Equal(t, "Admin", ev.Session.User.Name)

	saved, _ := store.Load()
	require.NotNil(t, saved)
	assert.Equal(t, "r1", saved.RefreshToken)

	api.EXPECT().Logout(ctx, "r1").Return(errors.New("offline"))
	require.NoError(t, m.SignOut(ctx))

	ev = next(t, events)
	assert.Equal(t, SignedOut, ev.Type)
	assert.Nil(t, ev.Session)

	_, ok := m.Current()
	assert.False(t, ok)
	saved, _ = store.Load()
	assert.Nil(t, saved)
}

func TestManager_SignIn_Rejected(t *testing.T) {
	ctx := context.Background()
	m, api, _ := setupManager(t, nil)

	api.EXPECT().Login(ctx, "admin@mbj.test", "bad").Return(auth.TokenResponse{}, autherrors.ErrInvalidCredentials)

	_, err := m.SignIn(ctx, "admin@mbj.test", "bad")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestManager_Init(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved", func(t *testing.T) {
		m, _, _ := setupManager(t, nil)
		require.NoError(t, m.Init(ctx))
		_, ok := m.Current()
		assert.False(t, ok)
	})

	t.Run("valid token restored without refresh", func(t *testing.T) {
		saved := fromTokens(tokens("a1", "r1", fixedNow.Add(10*time.Minute)))
		m, _, _ := setupManager(t, &saved)
		events, stop := m.Subscribe()
		defer stop()

		require.NoError(t, m.Init(ctx))
		assert.Equal(t, SessionRestored, next(t, events).Type)

		cur, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "a1", cur.AccessToken)
	})

	t.Run("expired token refreshed", func(t *testing.T) {
		saved := fromTokens(tokens("a1", "r1", fixedNow.Add(-time.Minute)))
		m, api, store := setupManager(t, &saved)
		api.EXPECT().Refresh(ctx, "r1").Return(tokens("a2", "r2", fixedNow.Add(15*time.Minute)), nil)

		require.NoError(t, m.Init(ctx))
		cur, _ := m.Current()
		assert.Equal(t, "a2", cur.AccessToken)

		persisted, _ := store.Load()
		assert.Equal(t, "r2", persisted.RefreshToken)
	})

	t.Run("invalid refresh token forces sign-out", func(t *testing.T) {
		saved := fromTokens(tokens("a1", "r1", fixedNow.Add(-time.Minute)))
		m, api, store := setupManager(t, &saved)
		events, stop := m.Subscribe()
		defer stop()
		api.EXPECT().Refresh(ctx, "r1").Return(auth.TokenResponse{}, autherrors.ErrInvalidRefreshToken)

		err := m.Init(ctx)
		assert.ErrorIs(t, err, autherrors.ErrSessionExpired)
		assert.Equal(t, SignedOut, next(t, events).Type)

		_, ok := m.Current()
		assert.False(t, ok)
		persisted, _ := store.Load()
		assert.Nil(t, persisted)
	})

	t.Run("network failure keeps saved session", func(t *testing.T) {
		saved := fromTokens(tokens("a1", "r1", fixedNow.Add(-time.Minute)))
		m, api, store := setupManager(t, &saved)
		api.EXPECT().Refresh(ctx, "r1").Return(auth.TokenResponse{}, errors.New("connection refused"))

		assert.Error(t, m.Init(ctx))
		persisted, _ := store.Load()
		assert.NotNil(t, persisted)
	})

	t.Run("server auth outage keeps saved session", func(t *testing.T) {
		saved := fromTokens(tokens("a1", "r1", fixedNow.Add(-time.Minute)))
		m, api, store := setupManager(t, &saved)
		api.EXPECT().Refresh(ctx, "r1").Return(auth.TokenResponse{}, autherrors.ErrAuthUnavailable)

		err := m.Init(ctx)
		assert.ErrorIs(t, err, autherrors.ErrAuthUnavailable)
		assert.NotErrorIs(t, err, autherrors.ErrSessionExpired)
		persisted, _ := store.Load()
		assert.NotNil(t, persisted)
	})
}

func TestManager_EnsureFresh(t *testing.T) {
	ctx := context.Background()

	t.Run("signed out", func(t *testing.T) {
		m, _, _ := setupManager(t, nil)
		assert.ErrorIs(t, m.EnsureFresh(ctx), autherrors.ErrUnauthorized)
	})

	t.Run("refreshes near expiry", func(t *testing.T) {
		m, api, _ := setupManager(t, nil)
		api.EXPECT().Login(ctx, gomock.Any(), gomock.Any()).Return(tokens("a1", "r1", fixedNow.Add(10*time.Second)), nil)
		_, err := m.SignIn(ctx, "admin@mbj.test", "pw")
		require.NoError(t, err)

		events, stop := m.Subscribe()
		defer stop()

		api.EXPECT().Refresh(ctx, "r1").Return(tokens("a2", "r2", fixedNow.Add(15*time.Minute)), nil)
		tok, err := m.AccessToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a2", tok)
		assert.Equal(t, TokenRefreshed, next(t, events).Type)

		// fresh now; no further refresh expected
		tok, err = m.AccessToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a2", tok)
	})
}

func TestManager_Close(t *testing.T) {
	m, _, _ := setupManager(t, nil)
	events, stop := m.Subscribe()

	m.Close()
	_, open := <-events
	assert.False(t, open)
	stop()

	late, _ := m.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
