// internal/httpserver/server.go
//
// HTTP server wiring for the Poké Guess backend.
// Responsibilities:
//   - Router + middleware (CORS, timeouts, panic recovery, request IDs, access log).
//   - Page + static assets: "/", "/static/*", "/share/qr.png".
//   - Game endpoints keyed by the player cookie: GET /game, POST /game/{new,guess,size}.
//   - Live channel: GET /game/ws (views and celebration effects).
//   - Diagnostics: "/health", optional "/debug/target".
//
// Notes:
//   - The WebSocket route sits outside the timeout group; chi's Timeout
//     would cancel a long-lived connection.
//   - Ignored game operations answer 204 with no body.

package httpserver

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pokeguess/assets"
	"github.com/robalobadob/pokeguess/internal/game"
	"github.com/robalobadob/pokeguess/internal/store"
)

// Config carries everything the server reads from the environment.
type Config struct {
	ClientOrigin  string        // CORS + WebSocket origin allowed besides same-origin.
	PlayerSecret  string        // HS256 key for the player cookie.
	CookieName    string        // Player cookie name.
	CookieTTL     time.Duration // Player cookie lifetime.
	SecureCookies bool          // Secure + SameSite=None cookies (production).
	DefaultMax    int           // Size of a new player's first game.
	PublicURL     string        // URL encoded in the share QR; request host when empty.
	DebugTarget   bool          // Expose GET /debug/target.
	WSBuffer      int           // Per-connection outbound buffer.
	Picker        game.Picker   // Target picker; nil means crypto/rand.
}

func (c Config) withDefaults() Config {
	if c.PlayerSecret == "" {
		c.PlayerSecret = "dev_secret_change_me"
	}
	if c.CookieName == "" {
		c.CookieName = "pokeguess_player"
	}
	if c.CookieTTL <= 0 {
		c.CookieTTL = 180 * 24 * time.Hour
	}
	if c.DefaultMax <= 0 {
		c.DefaultMax = game.DefaultMax
	}
	if c.WSBuffer <= 0 {
		c.WSBuffer = 32
	}
	return c
}

// Server bundles router, player store, and page template.
type Server struct {
	r     *chi.Mux
	store store.Store
	cfg   Config
	page  *template.Template
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cfg Config) (*Server, error) {
	page, err := assets.Page()
	if err != nil {
		return nil, err
	}
	s := &Server{r: chi.NewRouter(), store: st, cfg: cfg.withDefaults(), page: page}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(accessLog)       // zerolog request line
	s.r.Use(s.cors)          // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "players": s.store.Len()})
		})
		r.Handle("/static/*", http.StripPrefix("/static/", assets.Static()))
		r.Get("/share/qr.png", s.handleShareQR)
		r.With(s.withPlayer).Get("/", s.handlePage)

		r.Route("/game", func(r chi.Router) {
			r.Use(jsonContentType)
			r.Use(s.withPlayer)
			r.Get("/", s.handleView)
			r.Post("/new", s.handleNewGame)
			r.Post("/guess", s.handleGuess)
			r.Post("/size", s.handleSize)
		})

		if s.cfg.DebugTarget {
			r.With(jsonContentType, s.withPlayer).Get("/debug/target", s.handleDebugTarget)
		}
	})

	s.r.With(s.withPlayer).Get("/game/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets the Server be mounted directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ------------------------------- page --------------------------------------

type pageData struct {
	Title      string
	Hint       string
	GridLabel  string
	Max        int
	LowestMax  int
	HighestMax int
	ShareQR    bool
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	v := playerFrom(r).View()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.page.Execute(w, pageData{
		Title:      v.Title,
		Hint:       v.Feedback.Text,
		GridLabel:  v.GridLabel,
		Max:        v.Max,
		LowestMax:  game.LowestMax,
		HighestMax: game.HighestMax,
		ShareQR:    true,
	})
	if err != nil {
		log.Error().Err(err).Msg("render page")
	}
}

// ------------------------------ helpers ------------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
