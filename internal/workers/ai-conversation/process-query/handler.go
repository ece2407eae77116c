// internal/workers/ai-conversation/process-query/handler.go
package processquery

import (
	"context"
	"fmt"
	"time"

	"college-tracker/internal/common/errors"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/metrics"
	"college-tracker/internal/common/observability"
	"college-tracker/internal/models"
)

const TaskType = "process-query"

// Searcher is satisfied by the enrich-web-search handler.
type Searcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) []models.SearchResult
}

// Generator is satisfied by the llm-synthesis handler.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Handler orchestrates one assistant query: gate, search, prompt, generate.
// It holds no per-query state and is safe for concurrent use.
type Handler struct {
	config    *Config
	searcher  Searcher
	generator Generator
	obs       *observability.Observability
	now       func() time.Time
	logger    logger.Logger
}

type Option func(*Handler)

func WithObservability(obs *observability.Observability) Option {
	return func(h *Handler) { h.obs = obs }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(config *Config, searcher Searcher, generator Generator, log logger.Logger, opts ...Option) *Handler {
	if config.Vocabulary == nil {
		config.Vocabulary = LoadConfig().Vocabulary
	}
	h := &Handler{
		config:    config,
		searcher:  searcher,
		generator: generator,
		obs:       observability.Noop(),
		now:       time.Now,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input), nil
}

// ProcessQuery answers query with the tracked colleges and optional profile as
// context. It never fails: a generation error becomes fallback content.
func (h *Handler) ProcessQuery(ctx context.Context, query string, colleges []models.College, allowSearch bool, profile *models.UserProfile) *models.AIResponse {
	return h.execute(ctx, &Input{
		Query:       query,
		Colleges:    colleges,
		AllowSearch: allowSearch,
		Profile:     profile,
	})
}

func (h *Handler) execute(ctx context.Context, input *Input) (resp *Output) {
	start := h.now()
	searched := false
	outcome := metrics.OutcomeSuccess

	defer func() {
		if r := recover(); r != nil {
			err := errors.New(fmt.Sprint(r))
			h.logger.Error("query processing panicked", map[string]interface{}{"panic": r})
			outcome = metrics.OutcomeFallback
			resp = &Output{Content: FallbackContent(err)}
		}
		elapsed := h.now().Sub(start)
		metrics.QueriesProcessed.WithLabelValues(outcome).Inc()
		metrics.QueryDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
		h.obs.RecordQuery(ctx, elapsed, outcome, searched)
	}()

	var results []models.SearchResult
	if h.shouldSearch(input) {
		searchQuery := h.config.Vocabulary.SearchQuery(input.Query, h.now())
		searched = h.searcher.Enabled()
		results = h.searcher.Search(ctx, searchQuery)
		h.logger.Debug("search finished", map[string]interface{}{
			"searchQuery": searchQuery,
			"resultCount": len(results),
		})
	}

	prompt := BuildPrompt(input.Query, input.Colleges, input.Profile, results)

	answer, err := h.generator.Generate(ctx, prompt)
	if err != nil {
		outcome = metrics.OutcomeFallback
		h.logger.Error("generation failed, returning fallback answer", map[string]interface{}{
			"error":    err,
			"category": errorCategory(err),
		})
		return &Output{Content: FallbackContent(err)}
	}

	out := &Output{
		Content:     answer,
		Suggestions: ExtractSuggestions(answer, input.Colleges),
	}
	if len(results) > 0 {
		out.SearchResults = results
	}

	h.logger.Info("query processed", map[string]interface{}{
		"searched":        searched,
		"searchResults":   len(results),
		"suggestionCount": len(out.Suggestions),
		"collegeCount":    len(input.Colleges),
	})
	return out
}

// shouldSearch applies the caller switch, the session switch and the keyword
// gate. A missing provider key is handled by the searcher, which skips the call.
func (h *Handler) shouldSearch(input *Input) bool {
	if !input.AllowSearch || !h.config.AllowSearch || h.searcher == nil {
		return false
	}
	if !h.config.Vocabulary.NeedsSearch(input.Query) {
		return false
	}
	return true
}

func errorCategory(err error) string {
	if se, ok := errors.AsStandardError(err); ok {
		return errors.GetErrorCategory(se.Code)
	}
	return "OTHER"
}
