package challenge

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid("CRANE"))
	assert.True(t, Valid("A"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("crane"))
	assert.False(t, Valid("CR ANE"))
	assert.False(t, Valid("CRANE1"))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		prev string
		in   string
		want string
	}{
		{name: "lowercase is upper-cased", prev: "", in: "cra", want: "CRA"},
		{name: "invalid keeps previous", prev: "CRA", in: "cra1", want: "CRA"},
		{name: "space keeps previous", prev: "CRA", in: "CRA ", want: "CRA"},
		{name: "empty clears", prev: "CRA", in: "", want: ""},
		{name: "valid replaces", prev: "CRA", in: "CRANE", want: "CRANE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(tt.prev, tt.in))
		})
	}
}

func TestLink(t *testing.T) {
	got, err := Link("https://example.com/play?x=1&c=OLD#top", "CRANE")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/play?c=PENAR", got)

	got, err = Link("http://localhost:5175/", "CODE")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5175/?c=PBQR", got)

	_, err = Link("https://example.com/", "crane")
	assert.ErrorIs(t, err, ErrInvalidWord)

	_, err = Link("://bad", "CRANE")
	assert.Error(t, err)
}

func TestFromQuery(t *testing.T) {
	sol, ok := FromQuery(url.Values{"c": {"PENAR"}})
	require.True(t, ok)
	assert.Equal(t, "CRANE", sol)

	sol, ok = FromQuery(url.Values{"c": {"penar"}})
	require.True(t, ok)
	assert.Equal(t, "CRANE", sol)

	_, ok = FromQuery(url.Values{})
	assert.False(t, ok)

	_, ok = FromQuery(url.Values{"c": {"PEN4R"}})
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	for _, raw := range []string{
		"PENAR",
		" penar ",
		"https://example.com/?c=PENAR",
		"http://localhost:5175/play?c=PENAR#x",
		"?c=PENAR",
	} {
		sol, ok := Parse(raw)
		if assert.True(t, ok, raw) {
			assert.Equal(t, "CRANE", sol, raw)
		}
	}

	_, ok := Parse("https://example.com/")
	assert.False(t, ok)
}

func TestLinkRoundTrip(t *testing.T) {
	link, err := Link("https://example.com/", "SAMSONITE")
	require.NoError(t, err)
	sol, ok := Parse(link)
	require.True(t, ok)
	assert.Equal(t, "SAMSONITE", sol)
}
