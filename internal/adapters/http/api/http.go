// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	app "github.com/okian/stocksanalyzer/internal/app"
	"github.com/okian/stocksanalyzer/internal/domain/model"
	"github.com/okian/stocksanalyzer/pkg/logger"
)

// Default request limits.
const (
	defaultMaxPosts     = 10_000
	defaultMaxTickers   = 1_000
	defaultMaxBodyBytes = 4 << 20
)

// Engine is the scoring surface the handlers depend on.
type Engine interface {
	AnalyzeSocialPosts(ctx context.Context, posts []model.SocialPost, tracked []string) model.Scores
	AnalyzePopularity(ctx context.Context, history map[string]model.Series) model.Scores
	GenerateIdeas(ctx context.Context, social, popularity model.Scores, minScore float64) []model.TradeIdea
	Run(ctx context.Context, in app.Input) app.Result
	MinScore() float64
}

// Limits bounds request sizes.
type Limits struct {
	MaxPosts     int
	MaxTickers   int
	MaxBodyBytes int64
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLimits sets request limits; non-positive fields keep defaults.
func WithLimits(l Limits) Option {
	return func(s *Server) {
		if l.MaxPosts > 0 {
			s.limits.MaxPosts = l.MaxPosts
		}
		if l.MaxTickers > 0 {
			s.limits.MaxTickers = l.MaxTickers
		}
		if l.MaxBodyBytes > 0 {
			s.limits.MaxBodyBytes = l.MaxBodyBytes
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	engine Engine
	limits Limits
	logger logger.Logger

	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(engine Engine, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		limits: Limits{
			MaxPosts:     defaultMaxPosts,
			MaxTickers:   defaultMaxTickers,
			MaxBodyBytes: defaultMaxBodyBytes,
		},
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/sentiment", MetricsMiddleware(s.HandleSentiment, "sentiment"))
	mux.HandleFunc("/popularity", MetricsMiddleware(s.HandlePopularity, "popularity"))
	mux.HandleFunc("/ideas", MetricsMiddleware(s.HandleIdeas, "ideas"))
	mux.HandleFunc("/pipeline", MetricsMiddleware(s.HandlePipeline, "pipeline"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes the error response matching err's kind and logs it.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, ErrTooLarge), errors.Is(err, ErrBadRequest), errors.Is(err, ErrEmptyBody):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNonFinite):
		status, code = http.StatusUnprocessableEntity, "non_finite_score"
	}
	l := s.logger.With(
		logger.String("path", r.URL.Path),
		logger.String("requestID", RequestIDFrom(r.Context())),
	)
	l.Warn(r.Context(), "request failed", logger.Int("status", status), logger.Error(err))
	writeError(w, status, code, err)
}

// decode reads a JSON body bounded by the body limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.limits.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return NewKind(op, ErrEmptyBody)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return WrapKind(op, ErrTooLarge, err)
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

func (s *Server) checkPosts(op string, posts []model.SocialPost, tracked []string) error {
	if len(posts) > s.limits.MaxPosts {
		return WrapKind(op, ErrTooLarge, fmt.Errorf("%d posts exceeds limit %d", len(posts), s.limits.MaxPosts))
	}
	if len(tracked) > s.limits.MaxTickers {
		return WrapKind(op, ErrTooLarge, fmt.Errorf("%d tracked tickers exceeds limit %d", len(tracked), s.limits.MaxTickers))
	}
	return nil
}

func (s *Server) checkTickers(op, field string, n int) error {
	if n > s.limits.MaxTickers {
		return WrapKind(op, ErrTooLarge, fmt.Errorf("%d %s entries exceeds limit %d", n, field, s.limits.MaxTickers))
	}
	return nil
}

// finite rejects scores JSON cannot encode.
func finite(op string, scores ...model.Scores) error {
	var bad []string
	for _, sc := range scores {
		bad = append(bad, sc.NonFinite()...)
	}
	if len(bad) > 0 {
		return WrapKind(op, ErrNonFinite, fmt.Errorf("tickers %s", strings.Join(bad, ",")))
	}
	return nil
}

func ideaScores(in []model.TradeIdea) model.Scores {
	out := make(model.Scores, len(in))
	for _, idea := range in {
		out[idea.Ticker] = idea.Score
	}
	return out
}
