// internal/httpserver/ws.go
//
// Browser play loop over a websocket.
//
// One connection is one game. The client sends {"key": "..."} for every key
// press or on-screen button; the server applies it and answers with a frame.
// Messages are handled one at a time on the read loop, so the game is never
// touched concurrently. Once a guess solves the puzzle the server sends the
// final frame and closes the connection; nothing after that reaches the game.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/byoww/internal/challenge"
	"github.com/robalobadob/byoww/internal/game"
	"github.com/robalobadob/byoww/internal/input"
	"github.com/robalobadob/byoww/internal/results"
)

// SolvedMessage replaces the interactive surface once the puzzle is solved.
const SolvedMessage = "Solved :)"

const (
	wsReadLimit = 512
	wsIdle      = 30 * time.Minute
	wsWriteWait = 10 * time.Second
)

// wsIn is a client → server message.
type wsIn struct {
	Key string `json:"key"`
}

// wsOut is a server → client message.
type wsOut struct {
	Type    string               `json:"type"` // "frame" | "solved"
	Length  int                  `json:"length"`
	Frame   game.Frame           `json:"frame"`
	Hints   map[string]game.Clue `json:"hints"`
	Message string               `json:"message,omitempty"`
}

func newWSOut(g *game.Game, f game.Frame) wsOut {
	out := wsOut{Type: "frame", Length: g.Len(), Frame: f, Hints: hintsJSON(g)}
	if f.Solved {
		out.Type = "solved"
		out.Message = SolvedMessage
	}
	return out
}

// handleWS upgrades GET /ws?c=<code> and runs the game until it is solved
// or the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	solution, ok := challenge.FromQuery(r.URL.Query())
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_challenge")
		return
	}
	g, err := game.New(solution)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_challenge")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Debug().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	start := time.Now()
	log.Info().Int("length", g.Len()).Str("remote", r.RemoteAddr).Msg("websocket game started")
	log.Debug().Str("solution", solution).Msg("setting up with solution")

	conn.SetReadLimit(wsReadLimit)
	if err := s.wsWrite(conn, newWSOut(g, g.Frame())); err != nil {
		return
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdle))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("websocket read")
			}
			return
		}

		var msg wsIn
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Msg("invalid websocket message")
			continue
		}
		action := input.Parse(msg.Key)
		if action.Kind == input.None {
			continue
		}

		f := g.Apply(action)
		if err := s.wsWrite(conn, newWSOut(g, f)); err != nil {
			return
		}
		if f.Solved {
			attempts := len(g.Attempts())
			log.Info().Int("attempts", attempts).Msg("websocket game solved")
			s.record(r.Context(), results.Result{
				Code:      challenge.Code(solution),
				Length:    g.Len(),
				Attempts:  attempts,
				ElapsedMs: int(time.Since(start).Milliseconds()),
			})
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "solved"),
				time.Now().Add(wsWriteWait))
			return
		}
	}
}

func (s *Server) wsWrite(conn *websocket.Conn, v wsOut) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(v); err != nil {
		log.Debug().Err(err).Msg("websocket write")
		return err
	}
	return nil
}
