package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/byoww/internal/game"
)

func dial(t *testing.T, srv *httptest.Server, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	return websocket.DefaultDialer.Dial(url, nil)
}

func readOut(t *testing.T, conn *websocket.Conn) wsOut {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var out wsOut
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestWebsocketGame(t *testing.T) {
	res := &fakeResults{}
	srv := httptest.NewServer(newTestServer(t, res).Router())
	defer srv.Close()

	conn, _, err := dial(t, srv, "?c=PBQR")
	require.NoError(t, err)
	defer conn.Close()

	out := readOut(t, conn)
	assert.Equal(t, "frame", out.Type)
	assert.Equal(t, 4, out.Length)
	assert.Equal(t, []string{" ", " ", " ", " "}, out.Frame.Slots)

	require.NoError(t, conn.WriteJSON(wsIn{Key: "c"}))
	out = readOut(t, conn)
	assert.Equal(t, []string{"C", " ", " ", " "}, out.Frame.Slots)

	// keys that map to nothing get no reply; the next real key does
	require.NoError(t, conn.WriteJSON(wsIn{Key: "Shift"}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	for _, k := range []string{"O", "D", "E"} {
		require.NoError(t, conn.WriteJSON(wsIn{Key: k}))
		readOut(t, conn)
	}
	require.NoError(t, conn.WriteJSON(wsIn{Key: "Enter"}))
	out = readOut(t, conn)
	assert.Equal(t, "solved", out.Type)
	assert.Equal(t, SolvedMessage, out.Message)
	require.NotNil(t, out.Frame.Attempt)
	assert.Equal(t, []game.Clue{game.Correct, game.Correct, game.Correct, game.Correct}, out.Frame.Attempt.Clues)

	// the server closes the connection after the solved frame
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	got := res.recorded()
	require.Len(t, got, 1)
	assert.Equal(t, "PBQR", got[0].Code)
	assert.Equal(t, 1, got[0].Attempts)
}

func TestWebsocketRejectsBadChallenge(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, nil).Router())
	defer srv.Close()

	_, resp, err := dial(t, srv, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, resp, err = dial(t, srv, "?c=12")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
