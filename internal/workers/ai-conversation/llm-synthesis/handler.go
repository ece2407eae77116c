// internal/workers/ai-conversation/llm-synthesis/handler.go
package llmsynthesis

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"college-tracker/internal/common/errors"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/metrics"

	"google.golang.org/genai"
)

const (
	TaskType    = "llm-synthesis"
	serviceName = "generation API"
)

type Handler struct {
	config     *Config
	httpClient *http.Client
	logger     logger.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return NewHandlerWithHTTPClient(config, nil, log)
}

// NewHandlerWithHTTPClient lets tests route the SDK through an httptest server.
func NewHandlerWithHTTPClient(config *Config, httpClient *http.Client, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		httpClient: httpClient,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
			"model":    config.Model,
		}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// Generate returns the text of the first candidate for prompt.
func (h *Handler) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := h.execute(ctx, &Input{Prompt: prompt})
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// genaiClient builds the SDK client on first use so that a missing key is
// reported per call instead of at startup.
func (h *Handler) genaiClient(ctx context.Context) (*genai.Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.client != nil {
		return h.client, nil
	}
	if h.config.APIKey == "" {
		return nil, errors.NewConfigurationError(serviceName, "GEMINI_API_KEY is not set")
	}

	cc := &genai.ClientConfig{
		APIKey:     h.config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: h.httpClient,
	}
	if h.config.GenAIBaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: h.config.GenAIBaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, errors.NewConfigurationError(serviceName, err.Error())
	}
	h.client = client
	return client, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (output *Output, err error) {
	defer func() { metrics.GenerationCalls.WithLabelValues(metrics.Outcome(err)).Inc() }()

	client, err := h.genaiClient(ctx)
	if err != nil {
		return nil, err
	}

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, h.config.Model, genai.Text(input.Prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(h.config.Temperature),
		TopP:            genai.Ptr(h.config.TopP),
		TopK:            genai.Ptr(h.config.TopK),
		MaxOutputTokens: h.config.MaxOutputTokens,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewTimeoutError(serviceName, h.config.Timeout)
		}
		return nil, errors.NewTransportError(serviceName, err)
	}

	text, finish, ok := firstCandidateText(resp)
	if !ok {
		return nil, errors.NewMalformedResponseError(serviceName, "no text in candidates[0].content.parts[0]")
	}

	h.logger.Info("generation completed", map[string]interface{}{
		"promptChars":   len(input.Prompt),
		"responseChars": len(text),
		"durationMs":    time.Since(start).Milliseconds(),
	})

	return &Output{Text: text, Model: h.config.Model, FinishReason: finish}, nil
}

// firstCandidateText reads candidates[0].content.parts[0].text. Any missing
// link or blank text means the response is unusable.
func firstCandidateText(resp *genai.GenerateContentResponse) (string, string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", "", false
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return "", "", false
	}
	text := cand.Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", "", false
	}
	return text, string(cand.FinishReason), true
}
