// Package service wires the sentiment, popularity and idea scorers into the
// engine used by the HTTP API and the demo.
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okian/stocksanalyzer/internal/domain/ideas"
	"github.com/okian/stocksanalyzer/internal/domain/model"
	"github.com/okian/stocksanalyzer/internal/domain/popularity"
	"github.com/okian/stocksanalyzer/internal/domain/sentiment"
	"github.com/okian/stocksanalyzer/pkg/logger"
	"github.com/okian/stocksanalyzer/pkg/metrics"
)

// Operation names used in logs and metrics.
const (
	OpSentiment  = "sentiment"
	OpPopularity = "popularity"
	OpIdeas      = "ideas"
	OpPipeline   = "pipeline"
)

// Input is a full scoring request.
type Input struct {
	Posts   []model.SocialPost
	Tracked []string
	History map[string]model.Series
	// MinScore overrides the configured threshold when non-nil.
	MinScore *float64
}

// Result carries every intermediate score alongside the ideas.
type Result struct {
	Social     model.Scores      `json:"social"`
	Popularity model.Scores      `json:"popularity"`
	Ideas      []model.TradeIdea `json:"ideas"`
}

// Service is the trade idea engine. It holds only configuration and
// operational counters; every scoring call is independent.
type Service struct {
	analyzer *sentiment.Analyzer
	minScore float64

	positiveWords []string
	negativeWords []string

	logger  logger.Logger
	metrics *metrics.Manager

	// Operational counters for /stats
	sentimentRuns  atomic.Int64
	popularityRuns atomic.Int64
	ideaRuns       atomic.Int64
	ideasGenerated atomic.Int64
	nonFinite      atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager; the global manager is used otherwise.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithMinScore sets the default idea threshold.
func WithMinScore(minScore float64) Option {
	return func(s *Service) {
		s.minScore = minScore
	}
}

// WithLexicon replaces the sentiment word lists. Empty lists keep defaults.
func WithLexicon(positive, negative []string) Option {
	return func(s *Service) {
		s.positiveWords = positive
		s.negativeWords = negative
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		minScore: ideas.DefaultMinScore,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.metrics == nil {
		s.metrics = metrics.Global()
	}
	s.analyzer = sentiment.NewAnalyzer(sentiment.WithLexicon(s.positiveWords, s.negativeWords))

	return s
}

// MinScore returns the default idea threshold.
func (s *Service) MinScore() float64 { return s.minScore }

// AnalyzeSocialPosts scores tracked ticker mentions across posts.
func (s *Service) AnalyzeSocialPosts(ctx context.Context, posts []model.SocialPost, tracked []string) model.Scores {
	start := time.Now()
	scores := s.analyzer.Analyze(posts, tracked)
	s.sentimentRuns.Add(1)

	s.metrics.RecordPostsAnalyzed(len(posts))
	s.metrics.RecordTickersScored(metrics.SignalSentiment, len(scores))
	s.observe(ctx, OpSentiment, start)
	s.checkFinite(ctx, metrics.SignalSentiment, scores)

	s.logger.Debug(ctx, "social posts analyzed",
		logger.Int("posts", len(posts)),
		logger.Int("tracked", len(tracked)),
		logger.Int("scored", len(scores)),
	)
	return scores
}

// AnalyzePopularity scores every series with enough history.
func (s *Service) AnalyzePopularity(ctx context.Context, history map[string]model.Series) model.Scores {
	start := time.Now()
	scores := popularity.Analyze(history)
	s.popularityRuns.Add(1)

	var skipped []string
	for ticker, series := range history {
		if len(series) < popularity.MinSamples {
			skipped = append(skipped, ticker)
		}
	}

	s.metrics.RecordSeriesSkipped(len(skipped))
	s.metrics.RecordTickersScored(metrics.SignalPopularity, len(scores))
	s.observe(ctx, OpPopularity, start)
	s.checkFinite(ctx, metrics.SignalPopularity, scores)

	s.logger.Debug(ctx, "popularity analyzed",
		logger.Int("series", len(history)),
		logger.Int("scored", len(scores)),
		logger.Strings("skipped", skipped),
	)
	return scores
}

// GenerateIdeas merges the two signals and keeps tickers at or above minScore.
func (s *Service) GenerateIdeas(ctx context.Context, social, pop model.Scores, minScore float64) []model.TradeIdea {
	start := time.Now()
	out := ideas.Generate(social, pop, minScore)
	s.ideaRuns.Add(1)
	s.ideasGenerated.Add(int64(len(out)))

	candidates := len(social)
	for t := range pop {
		if _, ok := social[t]; !ok {
			candidates++
		}
	}

	s.metrics.RecordIdeas(len(out), candidates-len(out))
	s.observe(ctx, OpIdeas, start)

	combined := make(model.Scores, len(out))
	for _, idea := range out {
		combined[idea.Ticker] = idea.Score
	}
	s.checkFinite(ctx, metrics.SignalCombined, combined)

	s.logger.Debug(ctx, "trade ideas generated",
		logger.Int("candidates", candidates),
		logger.Int("ideas", len(out)),
		logger.Float64("minScore", minScore),
	)
	return out
}

// Run scores posts and history and synthesizes ideas in one call.
func (s *Service) Run(ctx context.Context, in Input) Result {
	start := time.Now()
	minScore := s.minScore
	if in.MinScore != nil {
		minScore = *in.MinScore
	}

	social := s.AnalyzeSocialPosts(ctx, in.Posts, in.Tracked)
	pop := s.AnalyzePopularity(ctx, in.History)
	res := Result{
		Social:     social,
		Popularity: pop,
		Ideas:      s.GenerateIdeas(ctx, social, pop, minScore),
	}
	s.observe(ctx, OpPipeline, start)

	s.logger.Info(ctx, "pipeline completed",
		logger.Int("posts", len(in.Posts)),
		logger.Int("series", len(in.History)),
		logger.Int("ideas", len(res.Ideas)),
	)
	return res
}

func (s *Service) observe(_ context.Context, op string, start time.Time) {
	s.metrics.RecordOperation(op, float64(time.Since(start).Microseconds())/1000)
}

// checkFinite flags NaN or infinite scores. The engine keeps them; callers
// that cannot represent them decide what to do.
func (s *Service) checkFinite(ctx context.Context, signal string, scores model.Scores) {
	bad := scores.NonFinite()
	if len(bad) == 0 {
		return
	}
	s.nonFinite.Add(int64(len(bad)))
	s.metrics.RecordNonFinite(signal, len(bad))
	s.logger.Warn(ctx, "non-finite scores",
		logger.String("signal", signal),
		logger.Strings("tickers", bad),
	)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"minScore":        s.minScore,
		"sentimentRuns":   s.sentimentRuns.Load(),
		"popularityRuns":  s.popularityRuns.Load(),
		"ideaRuns":        s.ideaRuns.Load(),
		"ideasGenerated":  s.ideasGenerated.Load(),
		"nonFiniteScores": s.nonFinite.Load(),
	}
}
