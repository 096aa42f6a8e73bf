// Package session keeps the signed-in admin on the client side. It restores
// a saved session at startup, refreshes the access token before it expires
// and tells subscribers when the session changes.
package session

import (
	"time"

	"go-couture-api/internal/auth"
)

type Session struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	ExpiresAt    time.Time         `json:"expires_at"`
	User         auth.AuthResponse `json:"user"`
}

func fromTokens(t auth.TokenResponse) Session {
	return Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.ExpiresAt,
		User:         t.User,
	}
}

// expiresWithin reports whether the access token is unusable d from now.
func (s Session) expiresWithin(now time.Time, d time.Duration) bool {
	return !s.ExpiresAt.After(now.Add(d))
}

type EventType string

const (
	SignedIn        EventType = "SIGNED_IN"
	SignedOut       EventType = "SIGNED_OUT"
	TokenRefreshed  EventType = "TOKEN_REFRESHED"
	SessionRestored EventType = "SESSION_RESTORED"
)

type Event struct {
	Type    EventType
	Session *Session
}
