// Package server exposes the improver over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"improver/internal/config"
	"improver/internal/metrics"
	"improver/internal/pipeline"
)

type Improver interface {
	Improve(ctx context.Context, text string) pipeline.Result
	Apply(text string, messages []string) string
}

// Words manages the custom dictionary.
type Words interface {
	AddCustomWord(ctx context.Context, word string) error
	RemoveCustomWord(ctx context.Context, word string) error
	CustomWords(ctx context.Context) ([]string, error)
	IsCustomWord(ctx context.Context, word string) (bool, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configure the optional parts of the server. A nil Words disables
// the custom-word endpoints, a nil Metrics the /metrics endpoint and
// request metrics.
type Options struct {
	MaxBodyBytes int64
	Words        Words
	Health       Pinger
	Metrics      *metrics.Collector
}

type Server struct {
	improver Improver
	words    Words
	health   Pinger
	metrics  *metrics.Collector
	logger   *zap.Logger
	maxBody  int64
	validate *validator.Validate
}

func New(improver Improver, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	validate := validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	return &Server{
		improver: improver,
		words:    opts.Words,
		health:   opts.Health,
		metrics:  opts.Metrics,
		logger:   logger,
		maxBody:  opts.MaxBodyBytes,
		validate: validate,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if s.metrics != nil {
		r.Use(instrument(s.metrics))
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/healthz", s.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/improve", s.improve)
		r.Post("/apply", s.apply)
		r.Get("/custom-word", s.listWords)
		r.Post("/custom-word", s.addWord)
		r.Get("/custom-word/{word}", s.lookupWord)
		r.Delete("/custom-word/{word}", s.removeWord)
	})
	return r
}
