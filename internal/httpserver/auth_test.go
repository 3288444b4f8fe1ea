package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robalobadob/lettergrid/internal/config"
)

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name, user, pw string
		ok             bool
	}{
		{"valid", "player_1", "long enough", true},
		{"short name", "ab", "long enough", false},
		{"long name", "abcdefghijklmnopqrstuvwxy", "long enough", false},
		{"bad rune", "player-1", "long enough", false},
		{"short password", "player_1", "short", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkCredentials(tt.user, tt.pw); (err == nil) != tt.ok {
				t.Fatalf("checkCredentials(%q) = %v, want ok=%v", tt.user, err, tt.ok)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := &Server{cfg: config.Config{Auth: config.Auth{JWTSecret: "secret", JWTExpiresDays: 1}}}
	tok, _, err := s.mintToken(&player{ID: "p1", Username: "kit"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	p, ok := s.verifyToken(tok)
	if !ok || p.ID != "p1" || p.Username != "kit" {
		t.Fatalf("verify = %+v %v", p, ok)
	}

	other := &Server{cfg: config.Config{Auth: config.Auth{JWTSecret: "other"}}}
	if _, ok := other.verifyToken(tok); ok {
		t.Fatal("token accepted with the wrong secret")
	}
}

func TestTokenFromPrefersHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "tok", Value: "from-cookie"})
	if got := tokenFrom(r, "tok"); got != "from-cookie" {
		t.Fatalf("cookie token = %q", got)
	}
	r.Header.Set("Authorization", "Bearer from-header")
	if got := tokenFrom(r, "tok"); got != "from-header" {
		t.Fatalf("header token = %q", got)
	}
}
