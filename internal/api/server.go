// Package api serves the tutoring flow as a JSON HTTP API with cookie
// sessions.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/abhisek/codemaster/internal/session"
)

const (
	cookieName   = "codemaster"
	keySessionID = "sid"
	keyUser      = "user"
)

// Options configures a Server.
type Options struct {
	// SessionSecret signs the session cookie. At least 32 bytes.
	SessionSecret  []byte
	SecureCookies  bool
	AllowedOrigins []string

	// Now is the clock used for session expiry. Defaults to time.Now.
	Now func() time.Time
}

// Server is the HTTP front-end over a session.Engine.
type Server struct {
	engine  *session.Engine
	cookies *sessions.CookieStore
	states  *registry
	origins []string
}

// NewServer creates a Server.
func NewServer(engine *session.Engine, opts Options) *Server {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cookies := sessions.NewCookieStore(opts.SessionSecret)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}

	return &Server{
		engine:  engine,
		cookies: cookies,
		states:  newRegistry(now),
		origins: opts.AllowedOrigins,
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api", func(r chi.Router) {
		r.Use(s.withSession)

		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Get("/state", s.handleState)
		r.Get("/usage", s.handleUsage)

		r.Group(func(r chi.Router) {
			r.Use(requireLogin)

			r.Post("/logout", s.handleLogout)
			r.Get("/placement/{language}", s.handleStartPlacement)
			r.Post("/placement", s.handleSubmitPlacement)
			r.Post("/problem", s.handleProblem)
			r.Post("/hint", s.handleHint)
			r.Delete("/hint", s.handleDismissHint)
			r.Post("/submit", s.handleSubmit)
			r.Post("/next", s.handleNext)
			r.Put("/settings", s.handleSettings)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
	})
	return c.Handler(r)
}

// Sweep drops sessions idle for longer than maxIdle.
func (s *Server) Sweep(maxIdle time.Duration) int {
	return s.states.sweep(maxIdle)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(maxIdle); n > 0 {
				slog.Info("expired idle sessions", "count", n, "live", s.states.len())
			}
		}
	}
}

type ctxKey struct{}

// reqSession is the per-request view of a session.
type reqSession struct {
	entry  *entry
	cookie *sessions.Session
}

func sessionFrom(ctx context.Context) *reqSession {
	rs, _ := ctx.Value(ctxKey{}).(*reqSession)
	return rs
}

// withSession attaches the caller's State, creating one when the cookie is
// missing or refers to a session this process does not know. A signed user
// name in the cookie is resumed without a password.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := s.cookies.Get(r, cookieName)
		if err != nil {
			slog.Debug("discarding invalid session cookie", "error", err)
		}

		id, _ := cookie.Values[keySessionID].(string)
		e, ok := s.states.get(id)
		if !ok {
			e = s.create(r.Context(), cookie)
			if err := cookie.Save(r, w); err != nil {
				slog.Error("failed to save session cookie", "error", err)
				writeError(w, errInternal)
				return
			}
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		e.touch(s.states.now())

		ctx := context.WithValue(r.Context(), ctxKey{}, &reqSession{entry: e, cookie: cookie})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) create(ctx context.Context, cookie *sessions.Session) *entry {
	e := s.states.create()
	cookie.Values[keySessionID] = e.state.ID

	if user, _ := cookie.Values[keyUser].(string); user != "" {
		if err := s.engine.Resume(ctx, e.state, user); err != nil {
			slog.Info("dropping session user", "user", user, "error", err)
			delete(cookie.Values, keyUser)
		}
	}
	return e
}

func requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rs := sessionFrom(r.Context()); rs == nil || !rs.entry.state.LoggedIn() {
			writeError(w, errUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string     `json:"error"`
	Usage *usageView `json:"usage,omitempty"`
	Cost  int        `json:"cost,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	body := errorBody{Error: err.Error()}

	var quota *session.QuotaDeniedError
	if errors.As(err, &quota) {
		u := renderUsage(quota.Usage)
		body.Usage = &u
		if u.RetryAfterSecs > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(u.RetryAfterSecs))
		}
	}
	var funds *session.InsufficientScoreError
	if errors.As(err, &funds) {
		body.Cost = funds.Cost
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		body.Error = errInternal.Error()
	}
	JSON(w, status, body)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}
