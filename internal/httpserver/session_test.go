package httpserver

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	tk, err := newTokens("secret", time.Hour, false)
	require.NoError(t, err)

	tok, exp, err := tk.sign("game-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	id, err := tk.verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "game-1", id)
}

func TestTokensRejectForeignKey(t *testing.T) {
	a, err := newTokens("secret-a", time.Hour, false)
	require.NoError(t, err)
	b, err := newTokens("secret-b", time.Hour, false)
	require.NoError(t, err)

	tok, _, err := a.sign("game-1")
	require.NoError(t, err)
	_, err = b.verify(tok)
	assert.ErrorIs(t, err, errBadToken)

	_, err = a.verify("not.a.token")
	assert.ErrorIs(t, err, errBadToken)
}

func TestTokensExpire(t *testing.T) {
	tk, err := newTokens("secret", time.Minute, false)
	require.NoError(t, err)
	clock := time.Now()
	tk.now = func() time.Time { return clock }

	tok, _, err := tk.sign("game-1")
	require.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	_, err = tk.verify(tok)
	assert.ErrorIs(t, err, errBadToken)
}

func TestBearerOrCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "", bearerOrCookie(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", bearerOrCookie(r))

	r = httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	tk, err := newTokens("secret", time.Hour, false)
	require.NoError(t, err)
	tk.setCookie(rec, "xyz", time.Now().Add(time.Hour))
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	assert.Equal(t, "xyz", bearerOrCookie(r))
}
