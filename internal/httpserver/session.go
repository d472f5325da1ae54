// internal/httpserver/session.go
//
// Session tokens for the JSON API.
//
// A token is an HS256 JWT whose subject is the game id. It lets the client
// that created a game keep playing it, and nobody else. The signing key is
// derived from the configured secret with HKDF so the raw secret is never
// used as a MAC key directly.

package httpserver

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	sessionCookieName = "byoww_session"
	tokenInfo         = "byoww session token v1"
)

var errBadToken = errors.New("invalid session token")

// tokens signs and verifies session JWTs.
type tokens struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func newTokens(secret string, ttl time.Duration, secure bool) (*tokens, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(tokenInfo)), key); err != nil {
		return nil, fmt.Errorf("derive token key: %w", err)
	}
	return &tokens{key: key, ttl: ttl, secure: secure, now: time.Now}, nil
}

// sign issues a token for gameID and returns it with its expiry.
func (t *tokens) sign(gameID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   gameID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.key)
	return ss, exp, err
}

// verify parses tok and returns the game id it was issued for.
func (t *tokens) verify(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", errBadToken
	}
	return claims.Subject, nil
}

// setCookie mirrors the token into a cookie so the browser page can use the
// API without handling the token itself.
func (t *tokens) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if t.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/api/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// ctxGameKey is the context key under which requireGame stores the game id.
type ctxGameKey struct{}

// requireGame rejects requests whose token is missing, invalid, or issued
// for a different game than the {id} URL parameter.
func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		id, err := s.tokens.verify(tok)
		if err != nil || id != chi.URLParam(r, "id") {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// gameID returns the id stored by requireGame.
func gameID(r *http.Request) string {
	id, _ := r.Context().Value(ctxGameKey{}).(string)
	return id
}
