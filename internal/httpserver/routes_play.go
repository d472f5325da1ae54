// internal/httpserver/routes_play.go
//
// JSON API for playing shared-link puzzles.
//   - POST /api/games            → start a game from an encoded challenge
//   - GET  /api/games/{id}       → snapshot of a game (token required)
//   - POST /api/games/{id}/keys  → apply one key to a game (token required)
//   - POST /api/links            → build a shareable link for a word
//   - GET  /api/stats?c=<code>   → solve statistics for a challenge
//
// Each key runs inside store.Update, so transitions on one game never
// interleave even when requests arrive concurrently.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/byoww/internal/challenge"
	"github.com/robalobadob/byoww/internal/game"
	"github.com/robalobadob/byoww/internal/input"
	"github.com/robalobadob/byoww/internal/results"
	"github.com/robalobadob/byoww/internal/store"
)

// maxBody bounds request payloads; every request here is a few bytes.
const maxBody = 4 << 10

// mountPlay registers the /api routes.
func (s *Server) mountPlay(r chi.Router) {
	r.Post("/games", s.handleNewGame)
	r.With(s.requireGame).Get("/games/{id}", s.handleGetGame)
	r.With(s.requireGame).Post("/games/{id}/keys", s.handleKey)
	r.Post("/links", s.handleLink)
	r.Get("/stats", s.handleStats)
}

// -----------------------------------------------------------------------------
// POST /api/games

type newGameReq struct {
	C string `json:"c"` // encoded challenge, as found in the link
}

type newGameRes struct {
	GameID string     `json:"gameId"`
	Token  string     `json:"token"`
	Length int        `json:"length"`
	Frame  game.Frame `json:"frame"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	solution, ok := challenge.FromCode(req.C)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_challenge")
		return
	}
	g, err := game.New(solution)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_challenge")
		return
	}

	sess, err := s.store.Create(r.Context(), challenge.Code(solution), g)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.sign(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.tokens.setCookie(w, tok, exp)

	log.Info().Str("gameId", sess.ID).Int("length", g.Len()).Msg("game started")
	log.Debug().Str("gameId", sess.ID).Str("solution", solution).Msg("setting up with solution")

	writeJSON(w, http.StatusCreated, newGameRes{
		GameID: sess.ID,
		Token:  tok,
		Length: g.Len(),
		Frame:  g.Frame(),
	})
}

// -----------------------------------------------------------------------------
// GET /api/games/{id}

type gameRes struct {
	game.Snapshot
	Hints map[string]game.Clue `json:"hints"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var res gameRes
	err := s.store.View(r.Context(), gameID(r), func(sess *store.Session) error {
		res = gameRes{Snapshot: sess.Game.Snapshot(), Hints: hintsJSON(sess.Game)}
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// POST /api/games/{id}/keys

type keyReq struct {
	Key string `json:"key"` // "A".."Z" (any case), "Backspace", "Enter", "␡", "⏎"
}

type keyRes struct {
	Frame    game.Frame `json:"frame"`
	Attempts int        `json:"attempts"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	action := input.Parse(req.Key)

	var (
		res    keyRes
		solved *results.Result
	)
	err := s.store.Update(r.Context(), gameID(r), func(sess *store.Session) error {
		res.Frame = sess.Game.Apply(action)
		res.Attempts = len(sess.Game.Attempts())
		if res.Frame.Attempt != nil && res.Frame.Solved {
			solved = &results.Result{
				Code:      sess.Code,
				Length:    sess.Game.Len(),
				Attempts:  res.Attempts,
				ElapsedMs: int(time.Since(sess.Started).Milliseconds()),
			}
		}
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	if solved != nil {
		log.Info().Str("gameId", gameID(r)).Int("attempts", solved.Attempts).Msg("game solved")
		s.record(r.Context(), *solved)
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// POST /api/links

type linkReq struct {
	Word string `json:"word"`
	Base string `json:"base"` // optional; defaults to PublicURL or this server
}

type linkRes struct {
	URL  string `json:"url"`
	Code string `json:"code"`
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	var req linkReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	base := req.Base
	if base == "" {
		base = s.baseURL(r)
	}
	link, err := challenge.Link(base, req.Word)
	if err != nil {
		if errors.Is(err, challenge.ErrInvalidWord) {
			writeError(w, http.StatusBadRequest, "invalid_word")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_base")
		return
	}
	writeJSON(w, http.StatusOK, linkRes{URL: link, Code: challenge.Code(req.Word)})
}

// baseURL is where shared links point: PublicURL if configured, else this host.
func (s *Server) baseURL(r *http.Request) string {
	if s.opts.PublicURL != "" {
		return s.opts.PublicURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

// -----------------------------------------------------------------------------
// GET /api/stats

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeError(w, http.StatusNotFound, "stats_disabled")
		return
	}
	solution, ok := challenge.FromQuery(r.URL.Query())
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_challenge")
		return
	}
	st, err := s.results.Stats(r.Context(), challenge.Code(solution))
	if err != nil {
		log.Error().Err(err).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ------------------------------ helpers ------------------------------------

// record writes a solve to the results log. Best effort: failures are logged.
func (s *Server) record(ctx context.Context, res results.Result) {
	if s.results == nil {
		return
	}
	if err := s.results.Record(ctx, res); err != nil {
		log.Warn().Err(err).Str("code", res.Code).Msg("record result")
	}
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	log.Error().Err(err).Msg("session store")
	writeError(w, http.StatusInternalServerError, "store_error")
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v)
}

// hintsJSON converts keyboard hints to string keys for JSON.
func hintsJSON(g *game.Game) map[string]game.Clue {
	hints := g.KeyHints()
	out := make(map[string]game.Clue, len(hints))
	for r, c := range hints {
		out[string(r)] = c
	}
	return out
}
