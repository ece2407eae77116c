// internal/workers/ai-conversation/process-query/handler_test.go
package processquery

import (
	"context"
	"strings"
	"testing"
	"time"

	"college-tracker/internal/common/errors"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSearcher struct {
	mock.Mock
	calls *[]string
}

func (m *MockSearcher) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSearcher) Search(ctx context.Context, query string) []models.SearchResult {
	if m.calls != nil {
		*m.calls = append(*m.calls, "search")
	}
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.SearchResult)
}

type MockGenerator struct {
	mock.Mock
	calls  *[]string
	prompt string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.calls != nil {
		*m.calls = append(*m.calls, "generate")
	}
	m.prompt = prompt
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func createTestConfig() *Config {
	config := LoadConfig()
	config.AllowSearch = true
	return config
}

func createTestHandler(t *testing.T, searcher Searcher, generator Generator) *Handler {
	return NewHandler(createTestConfig(), searcher, generator, logger.NewTestLogger(t), WithClock(func() time.Time { return fixedNow }))
}

func createTestColleges() []models.College {
	return []models.College{
		{
			ID:                  "c-1",
			Name:                "Test University",
			Location:            "Springfield, USA",
			ApplicationDeadline: "2027-01-01",
			ApplicationFee:      75,
			Status:              models.StatusInProgress,
			Requirements: models.Requirements{
				Essays:     []string{"Personal Statement"},
				TestScores: []string{"SAT"},
				Documents:  []string{"Transcript"},
			},
		},
	}
}

func createSearchResults() []models.SearchResult {
	return []models.SearchResult{
		{
			Title:         "Test University Admissions",
			URL:           "https://admissions.test.edu",
			Content:       "Regular decision applications are due January 1.",
			PublishedDate: "2026-09-01",
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_ProcessQuery_DeadlineQuestionSearchesFirst(t *testing.T) {
	var calls []string
	searcher := &MockSearcher{calls: &calls}
	generator := &MockGenerator{calls: &calls}

	query := "What is the application deadline for Test University?"
	searcher.On("Enabled").Return(true)
	searcher.On("Search", mock.Anything, query).Return(createSearchResults()).Once()
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return("The deadline for Test University is January 1, 2027.", nil).Once()

	handler := createTestHandler(t, searcher, generator)
	resp := handler.ProcessQuery(context.Background(), query, createTestColleges(), true, nil)

	require.NotNil(t, resp)
	assert.Equal(t, []string{"search", "generate"}, calls)
	assert.Equal(t, "The deadline for Test University is January 1, 2027.", resp.Content)
	require.Len(t, resp.SearchResults, 1)
	assert.Equal(t, "https://admissions.test.edu", resp.SearchResults[0].URL)
	assert.Contains(t, generator.prompt, "1. Test University Admissions")
	assert.Contains(t, generator.prompt, "URL: https://admissions.test.edu")

	searcher.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestHandler_ProcessQuery_NoKeywordSkipsSearch(t *testing.T) {
	searcher := &MockSearcher{}
	generator := &MockGenerator{}
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("Campus life is vibrant.", nil)

	handler := createTestHandler(t, searcher, generator)
	resp := handler.ProcessQuery(context.Background(), "Tell me about campus life", createTestColleges(), true, nil)

	assert.Equal(t, "Campus life is vibrant.", resp.Content)
	assert.Nil(t, resp.SearchResults)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestHandler_ProcessQuery_AllowSearchFalseSkipsSearch(t *testing.T) {
	searcher := &MockSearcher{}
	generator := &MockGenerator{}
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("January 1.", nil)

	handler := createTestHandler(t, searcher, generator)
	resp := handler.ProcessQuery(context.Background(), "What is the deadline?", nil, false, nil)

	assert.Equal(t, "January 1.", resp.Content)
	assert.Nil(t, resp.SearchResults)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestHandler_ProcessQuery_SessionSwitchOffSkipsSearch(t *testing.T) {
	searcher := &MockSearcher{}
	generator := &MockGenerator{}
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("ok", nil)

	config := createTestConfig()
	config.AllowSearch = false
	handler := NewHandler(config, searcher, generator, logger.NewTestLogger(t))
	handler.ProcessQuery(context.Background(), "latest scholarship news", nil, true, nil)

	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestHandler_ProcessQuery_EmptySearchResultsOmitted(t *testing.T) {
	searcher := &MockSearcher{}
	generator := &MockGenerator{}
	searcher.On("Enabled").Return(true)
	searcher.On("Search", mock.Anything, mock.Anything).Return([]models.SearchResult{})
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("answer", nil)

	handler := createTestHandler(t, searcher, generator)
	resp := handler.ProcessQuery(context.Background(), "scholarship options?", nil, true, nil)

	assert.Nil(t, resp.SearchResults)
	assert.NotContains(t, generator.prompt, "I found the following recent information from web search:")
}

func TestHandler_ProcessQuery_LongQueryUsesTopicPhrases(t *testing.T) {
	searcher := &MockSearcher{}
	generator := &MockGenerator{}
	searcher.On("Enabled").Return(true)
	searcher.On("Search", mock.Anything, "application deadline scholarships 2026 2027").Return(nil).Once()
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("answer", nil)

	query := "I am applying to several schools this year and I would really like to know every deadline and every scholarship I could qualify for"
	require.Greater(t, len(query), 100)

	handler := createTestHandler(t, searcher, generator)
	handler.ProcessQuery(context.Background(), query, nil, true, nil)

	searcher.AssertExpectations(t)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_ProcessQuery_GenerationFailureReturnsFallback(t *testing.T) {
	searcher := &MockSearcher{}
	generator := &MockGenerator{}
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return("", errors.NewConfigurationError("generation API", "GEMINI_API_KEY is not set"))

	handler := createTestHandler(t, searcher, generator)
	resp := handler.ProcessQuery(context.Background(), "Tell me about campus life", nil, true, nil)

	require.NotNil(t, resp)
	assert.Contains(t, resp.Content, "I'm having trouble connecting to my AI services right now.")
	assert.Contains(t, resp.Content, "Error details: generation API is not configured: GEMINI_API_KEY is not set")
	assert.Nil(t, resp.SearchResults)
	assert.Empty(t, resp.Suggestions)
}

func TestHandler_ProcessQuery_GeneratorPanicIsContained(t *testing.T) {
	generator := &MockGenerator{}
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		panic("boom")
	})

	handler := createTestHandler(t, &MockSearcher{}, generator)

	var resp *models.AIResponse
	require.NotPanics(t, func() {
		resp = handler.ProcessQuery(context.Background(), "hello", nil, true, nil)
	})
	assert.Contains(t, resp.Content, "Error details: boom")
}

func TestHandler_ProcessQuery_NonEmptyContentForAnyCollegeList(t *testing.T) {
	tests := []struct {
		name     string
		colleges []models.College
	}{
		{name: "nil list", colleges: nil},
		{name: "empty list", colleges: []models.College{}},
		{name: "one college", colleges: createTestColleges()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := &MockGenerator{}
			generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).
				Return("", errors.NewTransportError("generation API", errors.New("connection refused")))

			handler := createTestHandler(t, &MockSearcher{}, generator)
			resp := handler.ProcessQuery(context.Background(), "hi", tt.colleges, false, nil)

			assert.NotEmpty(t, strings.TrimSpace(resp.Content))
			assert.Contains(t, resp.Content, "Error")
		})
	}
}

func TestHandler_Execute_NeverReturnsError(t *testing.T) {
	generator := &MockGenerator{}
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("", errors.New("down"))

	handler := createTestHandler(t, &MockSearcher{}, generator)
	out, err := handler.Execute(context.Background(), &Input{Query: "hi"})

	require.NoError(t, err)
	assert.Contains(t, out.Content, "Error details: down")
}

// ==========================
// Suggestion Tests
// ==========================

func TestHandler_ProcessQuery_AttachesSuggestions(t *testing.T) {
	generator := &MockGenerator{}
	generator.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return("You should update the deadline for Test University to January 5.", nil)

	handler := createTestHandler(t, &MockSearcher{}, generator)
	resp := handler.ProcessQuery(context.Background(), "anything changed?", createTestColleges(), false, nil)

	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, models.SuggestOpenCollege, resp.Suggestions[0].Kind)
	assert.Equal(t, models.SuggestUpdateCollege, resp.Suggestions[1].Kind)
	assert.Equal(t, "c-1", resp.Suggestions[1].Payload["collegeId"])
}
