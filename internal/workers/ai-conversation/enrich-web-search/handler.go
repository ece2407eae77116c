// internal/workers/ai-conversation/enrich-web-search/handler.go
package enrichwebsearch

import (
	"context"
	"net"
	"time"

	"college-tracker/internal/common/errors"
	commonhttp "college-tracker/internal/common/http"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/metrics"
	"college-tracker/internal/models"
)

const (
	TaskType    = "enrich-web-search"
	serviceName = "web search"
)

type Handler struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return NewHandlerWithClient(config, commonhttp.NewClient(config.Timeout), log)
}

// NewHandlerWithClient lets tests inject an httptest client.
func NewHandlerWithClient(config *Config, client *commonhttp.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Enabled reports whether a search key is configured.
func (h *Handler) Enabled() bool {
	return h.config.SearchAPIKey != ""
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// Search runs the query and absorbs every failure into an empty result list.
func (h *Handler) Search(ctx context.Context, query string) []models.SearchResult {
	output, err := h.execute(ctx, &Input{Query: query})
	if err != nil {
		h.logger.Warn("web search failed, continuing without results", map[string]interface{}{
			"error": err,
		})
		return nil
	}
	return output.Results
}

func (h *Handler) execute(ctx context.Context, input *Input) (output *Output, err error) {
	if !h.Enabled() {
		metrics.SearchCalls.WithLabelValues(metrics.OutcomeSkipped).Inc()
		h.logger.Debug("search key not configured, skipping web search", nil)
		return &Output{Results: []models.SearchResult{}, Skipped: true}, nil
	}
	defer func() { metrics.SearchCalls.WithLabelValues(metrics.Outcome(err)).Inc() }()

	req := searchRequest{
		APIKey:            h.config.SearchAPIKey,
		Query:             input.Query,
		SearchDepth:       h.config.SearchDepth,
		IncludeAnswer:     false,
		IncludeImages:     false,
		IncludeRawContent: false,
		MaxResults:        h.config.MaxResults,
		IncludeDomains:    h.config.IncludeDomains,
	}
	headers := map[string]string{"Authorization": "Bearer " + h.config.SearchAPIKey}

	start := time.Now()
	var resp searchResponse
	if err := h.client.PostJSON(ctx, h.config.SearchAPIBaseURL, headers, req, &resp); err != nil {
		return nil, h.classify(ctx, err)
	}

	results := h.processResults(resp)

	h.logger.Info("web search completed", map[string]interface{}{
		"query":       input.Query,
		"resultCount": len(results),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return &Output{Results: results}, nil
}

func (h *Handler) classify(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.NewTimeoutError(serviceName, h.config.Timeout)
	}
	var statusErr *commonhttp.StatusError
	if errors.As(err, &statusErr) {
		return errors.NewTransportError(serviceName, statusErr)
	}
	if errors.Is(err, commonhttp.ErrDecodeResponse) {
		return errors.NewMalformedResponseError(serviceName, err.Error())
	}
	return errors.NewTransportError(serviceName, err)
}

// processResults keeps provider order, drops duplicate URLs and caps the count.
func (h *Handler) processResults(resp searchResponse) []models.SearchResult {
	seen := make(map[string]bool)
	results := make([]models.SearchResult, 0, len(resp.Results))

	for _, item := range resp.Results {
		if item.URL != "" && seen[item.URL] {
			continue
		}
		seen[item.URL] = true

		results = append(results, models.SearchResult{
			Title:         item.Title,
			URL:           item.URL,
			Content:       item.Content,
			PublishedDate: item.PublishedDate,
		})
	}

	if h.config.MaxResults > 0 && len(results) > h.config.MaxResults {
		results = results[:h.config.MaxResults]
	}
	return results
}
