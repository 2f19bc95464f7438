// Package server exposes the generators over HTTP.
//
// Routes:
//
//	GET    /health
//	GET    /api/generators
//	GET    /api/generators/{kind}
//	POST   /api/generators/{kind}/{format}
//	POST   /api/share/{kind}
//	GET    /api/share/{token}
//	GET    /api/bookmarks
//	PUT    /api/bookmarks/{id}
//	DELETE /api/bookmarks/{id}
//	POST   /api/bookmarks/{id}/toggle
//	GET    /ws/animate/{kind}
//
// Generation requests carry the parameter model as a JSON body (an empty
// body renders the defaults) and return the raw artifact. The animation
// stream pushes one JSON frame per tick until the client disconnects.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/blocks/pkg/anim"
	"github.com/matzehuels/blocks/pkg/bookmark"
	"github.com/matzehuels/blocks/pkg/observability"
	"github.com/matzehuels/blocks/pkg/pipeline"
)

// MaxBodyBytes bounds a request body.
const MaxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	runner    *pipeline.Runner
	bookmarks bookmark.Store
	logger    *log.Logger

	frameInterval  time.Duration
	maxFrames      int
	originPatterns []string

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithFrameInterval sets the animation tick; the default is 60 Hz.
func WithFrameInterval(d time.Duration) Option {
	return func(s *Server) { s.frameInterval = d }
}

// WithMaxFrames ends every animation stream after n frames. Zero streams
// until the client leaves.
func WithMaxFrames(n int) Option {
	return func(s *Server) { s.maxFrames = n }
}

// WithOriginPatterns allows cross-origin websocket clients whose Origin
// host matches one of patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) { s.originPatterns = patterns }
}

// New builds a server. bookmarks may be nil, which disables the bookmark
// routes.
func New(runner *pipeline.Runner, bookmarks bookmark.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:        runner,
		bookmarks:     bookmarks,
		logger:        logger,
		frameInterval: anim.FrameInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/generators", s.handleListGenerators)
		r.Get("/generators/{kind}", s.handleDefaults)
		r.Post("/generators/{kind}/{format}", s.handleGenerate)

		r.Post("/share/{kind}", s.handleShareEncode)
		r.Get("/share/{token}", s.handleShareDecode)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(s.requireBookmarks)
			r.Get("/", s.handleListBookmarks)
			r.Put("/{id}", s.handleAddBookmark)
			r.Delete("/{id}", s.handleRemoveBookmark)
			r.Post("/{id}/toggle", s.handleToggleBookmark)
		})
	})

	r.Get("/ws/animate/{kind}", s.handleAnimate)
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// observe reports each request to the server hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
