package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-couture-api/internal/auth"
	autherrors "go-couture-api/internal/auth/errors"

	"go.uber.org/zap"
)

// refreshSkew is how long before expiry an access token is renewed.
const refreshSkew = 30 * time.Second

// Authenticator is the auth provider as reached over the network.
//
//go:generate mockgen -source=manager.go -destination=../mock/session/authenticator_mock.go -package=mock
type Authenticator interface {
	Login(ctx context.Context, email, password string) (auth.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type Manager struct {
	mu      sync.Mutex
	api     Authenticator
	store   Store
	current *Session
	subs    map[int]chan Event
	nextSub int
	closed  bool
	now     func() time.Time
	logger  *zap.Logger
}

func NewManager(api Authenticator, store Store, logger ...*zap.Logger) *Manager {
	l := zap.L().Named("session.manager")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.manager")
	}
	return &Manager{
		api:    api,
		store:  store,
		subs:   make(map[int]chan Event),
		now:    time.Now,
		logger: l,
	}
}

// Subscribe returns a channel of session events and a function that stops
// delivery. Events are dropped for subscribers that fall behind.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Event, 8)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if c, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(c)
			}
		})
	}
}

// publish must be called with m.mu held.
func (m *Manager) publish(t EventType) {
	var snapshot *Session
	if m.current != nil {
		cp := *m.current
		snapshot = &cp
	}
	for _, ch := range m.subs {
		select {
		case ch <- Event{Type: t, Session: snapshot}:
		default:
			m.logger.Warn("session event dropped", zap.String("event", string(t)))
		}
	}
}

// Init restores a saved session. A token the server no longer accepts signs
// the admin out and returns ErrSessionExpired.
func (m *Manager) Init(ctx context.Context) error {
	saved, err := m.store.Load()
	if err != nil {
		m.logger.Warn("saved session unreadable, starting signed out", zap.Error(err))
		_ = m.store.Clear()
		return nil
	}
	if saved == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = saved
	if !saved.expiresWithin(m.now(), refreshSkew) {
		m.publish(SessionRestored)
		return nil
	}

	if err := m.refreshLocked(ctx); err != nil {
		return err
	}
	m.publish(SessionRestored)
	return nil
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (Session, error) {
	tokens, err := m.api.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	s := fromTokens(tokens)
	if err := m.store.Save(s); err != nil {
		m.logger.Error("failed to save session", zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &s
	m.publish(SignedIn)
	return s, nil
}

// SignOut ends the session locally even when the server cannot be reached.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil
	}
	refresh := m.current.RefreshToken
	m.mu.Unlock()

	// the api may ask this manager for an access token, so no lock here
	if err := m.api.Logout(ctx, refresh); err != nil {
		m.logger.Warn("server sign-out failed", zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		m.signOutLocked()
	}
	return nil
}

func (m *Manager) signOutLocked() {
	if err := m.store.Clear(); err != nil {
		m.logger.Error("failed to clear saved session", zap.Error(err))
	}
	m.current = nil
	m.publish(SignedOut)
}

func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// EnsureFresh refreshes the access token when it is about to expire.
func (m *Manager) EnsureFresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return autherrors.ErrUnauthorized
	}
	if !m.current.expiresWithin(m.now(), refreshSkew) {
		return nil
	}
	if err := m.refreshLocked(ctx); err != nil {
		return err
	}
	m.publish(TokenRefreshed)
	return nil
}

// AccessToken returns a usable access token, refreshing first if needed.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	if err := m.EnsureFresh(ctx); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return "", autherrors.ErrUnauthorized
	}
	return m.current.AccessToken, nil
}

func (m *Manager) refreshLocked(ctx context.Context) error {
	tokens, err := m.api.Refresh(ctx, m.current.RefreshToken)
	if err != nil {
		if errors.Is(err, autherrors.ErrInvalidRefreshToken) || errors.Is(err, autherrors.ErrRefreshTokenRequired) {
			m.logger.Info("refresh token rejected, signing out")
			m.signOutLocked()
			return autherrors.ErrSessionExpired.Wrap(err)
		}
		return err
	}

	s := fromTokens(tokens)
	m.current = &s
	if err := m.store.Save(s); err != nil {
		m.logger.Error("failed to save session", zap.Error(err))
	}
	return nil
}

// Close ends every subscription.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}
