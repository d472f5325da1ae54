// internal/httpserver/server.go
//
// HTTP server wiring.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts, CORS).
//   - Public endpoints: "/" (browser page and its assets), "/health".
//   - Browser play loop over a websocket: "/ws?c=<code>".
//   - JSON API under /api: games, keys, links, stats.
//   - Background sweep of idle sessions.
//
// Notes:
//   - The server never decides whether a guess is a real word; any letters
//     are accepted, as in the shared-link game.
//   - The results log is optional; without it /api/stats answers 404.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/byoww/assets"
	"github.com/robalobadob/byoww/internal/results"
	"github.com/robalobadob/byoww/internal/store"
)

// Results is the subset of the results log the server uses.
type Results interface {
	Record(ctx context.Context, r results.Result) error
	Stats(ctx context.Context, code string) (results.Stats, error)
}

// Options carries the server settings taken from config.
type Options struct {
	PublicURL     string        // base for generated links; derived from the request if empty
	ClientOrigin  string        // extra origin allowed for CORS and websockets
	SessionSecret string        // HKDF input for token signing
	SessionTTL    time.Duration // token lifetime and idle-session cutoff
	Secure        bool          // mark cookies Secure (behind TLS)
}

// Server bundles router, session store, and optional results log.
type Server struct {
	r        *chi.Mux
	store    store.Store
	results  Results
	tokens   *tokens
	opts     Options
	upgrader websocket.Upgrader
	web      fs.FS
}

// New constructs a Server, installs middleware, and registers routes.
// res may be nil to run without a results log.
func New(st store.Store, res Results, opts Options) (*Server, error) {
	tk, err := newTokens(opts.SessionSecret, opts.SessionTTL, opts.Secure)
	if err != nil {
		return nil, err
	}
	s := &Server{r: chi.NewRouter(), store: st, results: res, tokens: tk, opts: opts, web: assets.Web()}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// Browser play loop. Kept outside the timeout group: a game can last
	// far longer than any single request.
	s.r.Get("/ws", s.handleWS)

	// JSON API
	s.r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(s.cors)
		s.mountPlay(r)
	})

	// Static page and assets.
	s.r.Handle("/*", http.FileServer(http.FS(s.web)))

	return s, nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is canceled, then shuts down gracefully.
// Idle sessions are swept every SessionTTL/4 while running.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sweep(ctx context.Context) {
	every := s.opts.SessionTTL / 4
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(ctx, s.opts.SessionTTL); n > 0 {
				log.Debug().Int("sessions", n).Msg("swept idle sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.ClientOrigin != "" {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkOrigin accepts same-host websocket upgrades and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || (s.opts.ClientOrigin != "" && origin == s.opts.ClientOrigin) {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// ------------------------------ helpers ------------------------------------

// writeJSON encodes v with status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError sends {"error": msg}.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
