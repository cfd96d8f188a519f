// Package session holds the signed-in identity and its on-disk form.
// The token is an opaque bearer credential as far as the backend is
// concerned; when it happens to be a Google ID token we read its
// claims for display purposes only, the backend stays the verifier.
package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the identity threaded through every screen. Populated on
// sign-in, cleared on sign-out. Expiry is not tracked; requests begin
// failing with 401 when the token goes stale.
type Session struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	Email       string `json:"userEmail"`
	DisplayName string `json:"displayName,omitempty"`
}

// Valid reports whether a usable token is present.
func (s *Session) Valid() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// Who returns the best displayable identity for the nav bar.
func (s *Session) Who() string {
	if s == nil {
		return ""
	}
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Email
}

// FromIDToken builds a session from a Google ID token, filling user id,
// email and display name from its claims. The parse is unverified: the
// token is handed straight to the backend, which validates it.
func FromIDToken(idToken string) (*Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return nil, err
	}
	sess := &Session{Token: idToken}
	if sub, ok := claims["sub"].(string); ok {
		sess.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		sess.DisplayName = name
	}
	return sess, nil
}
