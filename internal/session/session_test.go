package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestFromIDTokenExtractsClaims(t *testing.T) {
	raw := signedTestToken(t, jwt.MapClaims{
		"sub":   "108123456789",
		"email": "ada@example.com",
		"name":  "Ada Lovelace",
	})

	sess, err := FromIDToken(raw)
	if err != nil {
		t.Fatalf("FromIDToken: %v", err)
	}
	if sess.Token != raw {
		t.Fatal("token was not kept verbatim")
	}
	if sess.UserID != "108123456789" {
		t.Fatalf("UserID: got %q", sess.UserID)
	}
	if sess.Email != "ada@example.com" {
		t.Fatalf("Email: got %q", sess.Email)
	}
	if sess.DisplayName != "Ada Lovelace" {
		t.Fatalf("DisplayName: got %q", sess.DisplayName)
	}
}

func TestFromIDTokenToleratesMissingClaims(t *testing.T) {
	raw := signedTestToken(t, jwt.MapClaims{"sub": "42"})

	sess, err := FromIDToken(raw)
	if err != nil {
		t.Fatalf("FromIDToken: %v", err)
	}
	if sess.UserID != "42" || sess.Email != "" || sess.DisplayName != "" {
		t.Fatalf("got %+v", sess)
	}
}

func TestFromIDTokenRejectsGarbage(t *testing.T) {
	if _, err := FromIDToken("not-a-jwt"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		name string
		sess *Session
		want bool
	}{
		{"nil", nil, false},
		{"empty token", &Session{UserID: "u1"}, false},
		{"whitespace token", &Session{Token: "   "}, false},
		{"token present", &Session{Token: "abc"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sess.Valid(); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWhoPrefersDisplayName(t *testing.T) {
	s := &Session{Token: "t", Email: "ada@example.com", DisplayName: "Ada"}
	if got := s.Who(); got != "Ada" {
		t.Fatalf("got %q", got)
	}
	s.DisplayName = ""
	if got := s.Who(); got != "ada@example.com" {
		t.Fatalf("got %q", got)
	}
}
