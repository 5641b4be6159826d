// internal/httpserver/server.go
//
// Local HTTP adapter for the Mastermind engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game command endpoints under /game (require a session cookie).
//   - Daily game endpoint: POST /daily/new.
//   - Preference endpoints: GET/PUT /prefs.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every command on a game runs inside store.Session.Do, which is the
//     only serialization point the controller has.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/controller"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/prefs"
	"github.com/robalobadob/mastermind/internal/seed"
	"github.com/robalobadob/mastermind/internal/store"
)

// Options configures a Server.
type Options struct {
	// Secret signs session tokens (HS256).
	Secret string

	// ClientOrigin is the single origin allowed by CORS.
	ClientOrigin string

	// TestMode is the default for new games that do not ask explicitly.
	TestMode bool

	// Seed, when set, makes every new game draw from seed.New(Seed).
	Seed string

	// DailySalt keys the date-seeded games of /daily/new.
	DailySalt string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Server bundles the router, the session store and the preference store.
type Server struct {
	r     *chi.Mux
	store store.Store
	prefs prefs.Store
	opt   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, ps prefs.Store, opt Options) *Server {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.ClientOrigin == "" {
		opt.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, prefs: ps, opt: opt}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opt.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"mastermind","endpoints":["/health","POST /game/new","/game/*","POST /daily/new","/prefs"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleGetGame)
			r.Post("/select", s.handleSelect)
			r.Post("/place", s.handlePlace)
			r.Post("/clear", s.handleClear)
			r.Post("/move", s.handleMove)
			r.Post("/submit", s.handleSubmit)
			r.Post("/reset", s.handleReset)
		})
	})

	s.mountDaily(s.r)

	s.r.Get("/prefs", s.handleGetPrefs)
	s.r.Put("/prefs", s.handlePutPrefs)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// newController builds a controller for a fresh session.
func (s *Server) newController(src game.Source, testMode, tutorial bool) *controller.Controller {
	if src == nil {
		if s.opt.Seed != "" {
			src = seed.New(s.opt.Seed)
		} else {
			src = game.CryptoSource{}
		}
	}
	return controller.New(
		controller.WithSource(src),
		controller.WithTestMode(testMode),
		controller.WithTutorialMode(tutorial),
		controller.WithLogger(log.Logger),
	)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ helpers ------------------------------------

type errRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeErrDetail(w, code, msg, "")
}

func writeErrDetail(w http.ResponseWriter, code int, msg, detail string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errRes{Error: msg, Detail: detail})
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
