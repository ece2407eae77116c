// internal/workers/ai-conversation/college-lookup/handler.go
package collegelookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"college-tracker/internal/common/errors"
	"college-tracker/internal/common/events"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/metrics"
	"college-tracker/internal/common/observability"
	"college-tracker/internal/common/validation"
	"college-tracker/internal/models"

	"github.com/google/uuid"
)

const (
	TaskType    = "college-lookup"
	serviceName = "college lookup"
)

var lookupSchema = validation.MustCompile(validation.LookupObjectSchema)

// QueryProcessor is satisfied by the process-query handler.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, query string, colleges []models.College, allowSearch bool, profile *models.UserProfile) *models.AIResponse
}

type CollegeStore interface {
	AddCollege(ctx context.Context, c models.College) (models.College, error)
}

type Publisher interface {
	Publish(e events.Event) int
}

type Handler struct {
	config    *Config
	processor QueryProcessor
	store     CollegeStore
	bus       Publisher
	extractor Extractor
	obs       *observability.Observability
	now       func() time.Time
	newID     func() string
	logger    logger.Logger
}

type Option func(*Handler)

func WithExtractor(e Extractor) Option {
	return func(h *Handler) { h.extractor = e }
}

func WithObservability(obs *observability.Observability) Option {
	return func(h *Handler) { h.obs = obs }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(h *Handler) { h.newID = gen }
}

// NewHandler wires a lookup. store and bus may be nil when only Lookup is used.
func NewHandler(config *Config, processor QueryProcessor, store CollegeStore, bus Publisher, log logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		config:    config,
		processor: processor,
		store:     store,
		bus:       bus,
		extractor: DefaultExtractor,
		obs:       observability.Noop(),
		now:       time.Now,
		newID:     uuid.NewString,
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
	if input.Add {
		c, err := h.AddFromLookup(ctx, input.Name, input.Profile)
		if err != nil {
			return nil, err
		}
		return &Output{College: c, Added: true}, nil
	}
	c, err := h.Lookup(ctx, input.Name, input.Profile)
	if err != nil {
		return nil, err
	}
	return &Output{College: *c}, nil
}

// Lookup asks the assistant for structured data about one college and turns
// the answer into a new, unsaved College.
func (h *Handler) Lookup(ctx context.Context, name string, profile *models.UserProfile) (college *models.College, err error) {
	outcome := metrics.OutcomeSuccess
	defer func() {
		if err != nil && outcome == metrics.OutcomeSuccess {
			outcome = metrics.OutcomeFailure
		}
		metrics.LookupsCompleted.WithLabelValues(outcome).Inc()
		h.obs.RecordLookup(ctx, outcome)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationFailedError("college name is required")
	}

	lookupCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	start := h.now()
	resp := h.processor.ProcessQuery(lookupCtx, BuildLookupPrompt(name, profile), nil, true, profile)

	if lookupCtx.Err() != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		outcome = metrics.OutcomeTimeout
		h.logger.Warn("college lookup timed out", map[string]interface{}{
			"college": name,
			"timeout": h.config.Timeout.String(),
		})
		return nil, errors.NewTimeoutError(serviceName, h.config.Timeout)
	}

	raw := resp.Content
	obj, ok := h.extractor.Extract(raw)
	if !ok {
		h.logger.Warn("no structured data in lookup response", map[string]interface{}{"college": name})
		return nil, errors.NewParseError("No structured data found", raw)
	}

	result, err := lookupSchema.Validate(obj)
	if err != nil {
		return nil, errors.NewParseError(err.Error(), raw)
	}
	if !result.Valid {
		h.logger.Warn("lookup response rejected", map[string]interface{}{
			"college": name,
			"errors":  result.GetErrorMessages(),
		})
		return nil, errors.NewParseError("No structured data found", raw)
	}

	c := collegeFromObject(obj)
	c.ID = h.newID()
	now := h.now()
	c.AddedDate = now.Format("2006-01-02")
	c.LastUpdated = now.UTC().Format(time.RFC3339)

	h.logger.Info("college lookup completed", map[string]interface{}{
		"college":    c.Name,
		"durationMs": now.Sub(start).Milliseconds(),
	})
	return &c, nil
}

// AddFromLookup stores a looked-up college and asks the UI to open it.
func (h *Handler) AddFromLookup(ctx context.Context, name string, profile *models.UserProfile) (models.College, error) {
	if h.store == nil {
		return models.College{}, errors.NewConfigurationError(serviceName, "no store attached")
	}

	c, err := h.Lookup(ctx, name, profile)
	if err != nil {
		return models.College{}, err
	}

	added, err := h.store.AddCollege(ctx, *c)
	if err != nil {
		return models.College{}, fmt.Errorf("failed to save %s: %w", c.Name, err)
	}

	if h.bus != nil {
		h.bus.Publish(events.OpenCollege(added.Name))
	}
	return added, nil
}

// BuildLookupPrompt asks for a single JSON object about name, scoped to the
// student's profile when one is known.
func BuildLookupPrompt(name string, profile *models.UserProfile) string {
	var b strings.Builder

	if profile != nil {
		fmt.Fprintf(&b, "User profile:\n- Grade: %s\n- Country: %s\n- GPA: %s\n- Extracurriculars: %s\n\n",
			profile.Grade, profile.Country, profile.GPA, profile.Extracurriculars)
	}

	fmt.Fprintf(&b, "Now, provide detailed and structured information for the college: %s. ", name)
	if profile != nil {
		b.WriteString("Only show deadlines and requirements that are relevant for a student in this grade, country, and academic background. ")
	}
	b.WriteString("Include location, deadlines, application fee, portal link, requirements (essays, test scores, documents), and scholarships. ")
	b.WriteString("Respond in JSON format only, as one object with the keys name, location, applicationDeadline, earlyDeadline, " +
		"applicationFee, portalLink, requirements (essays, testScores, documents), scholarships and notes. ")
	b.WriteString("Always include a 'name' field. If a deadline is not relevant for this user, do not include it.")
	return b.String()
}
