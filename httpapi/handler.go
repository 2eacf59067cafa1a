package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/poiesic/orgdir/search"
	"github.com/poiesic/orgdir/seed"
)

// SourceHeader names the response header carrying the result source.
const SourceHeader = "X-Search-Source"

var (
	// ErrSearcherRequired is returned when a handler is built without a searcher.
	ErrSearcherRequired = errors.New("searcher required")
)

// Searcher is the lookup side of search.Gateway.
type Searcher interface {
	Lookup(ctx context.Context, queryText string) search.Lookup
}

// Seeder runs a seed. Both *seed.Seeder and *seed.Guard satisfy it.
type Seeder interface {
	Seed(ctx context.Context) seed.Result
}

// Handler serves the directory API.
type Handler struct {
	searcher    Searcher
	seeder      Seeder
	rateLimit   int
	rateWindow  time.Duration
	seedTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithSeeder enables POST /companies/seed.
func WithSeeder(s Seeder) Option {
	return func(h *Handler) {
		h.seeder = s
	}
}

// WithRateLimit allows requests search calls per window for each client IP.
// Default is 60 per minute; requests < 1 disables the limit.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(h *Handler) {
		h.rateLimit = requests
		h.rateWindow = window
	}
}

// WithSeedTimeout bounds a seed run started over HTTP.
// Default is one minute.
func WithSeedTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.seedTimeout = d
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler creates a handler over searcher.
func NewHandler(searcher Searcher, opts ...Option) (*Handler, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	h := &Handler{
		searcher:    searcher,
		rateLimit:   60,
		rateWindow:  time.Minute,
		seedTimeout: time.Minute,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Routes returns the router for the API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)

	r.Route("/companies", func(r chi.Router) {
		r.Group(func(gr chi.Router) {
			if h.rateLimit > 0 {
				gr.Use(httprate.Limit(h.rateLimit, h.rateWindow,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
						writeProblem(w, http.StatusTooManyRequests, "search rate limit exceeded")
					}),
				))
			}
			gr.Get("/search", h.handleSearch)
		})
		if h.seeder != nil {
			r.Post("/seed", h.handleSeed)
		}
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	lookup := h.searcher.Lookup(r.Context(), r.URL.Query().Get("q"))
	w.Header().Set(SourceHeader, lookup.Source.String())
	writeJSON(w, http.StatusOK, lookup.Results)
}

func (h *Handler) handleSeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.seedTimeout)
	defer cancel()

	result := h.seeder.Seed(ctx)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
