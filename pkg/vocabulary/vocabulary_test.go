package vocabulary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsSearch(t *testing.T) {
	v := Default()

	tests := []struct {
		query string
		want  bool
	}{
		{"What is the application deadline for Test University?", true},
		{"Tell me about campus life", false},
		{"What GPA do I need?", true},
		{"Any RECENT news on Early Action?", true},
		{"Is there a renewal policy?", true}, // substring "new"
		{"How is the food?", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, v.NeedsSearch(tt.query))
		})
	}
}

func TestSearchQuery(t *testing.T) {
	v := Default()
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	t.Run("short query is verbatim", func(t *testing.T) {
		q := "What is the application deadline for Test University?"
		assert.Equal(t, q, v.SearchQuery(q, now))
	})

	t.Run("long query is condensed to topics and years", func(t *testing.T) {
		q := "I am trying to plan my whole senior year and I want to know the deadline and every requirement " +
			"plus any tuition numbers for my list"
		require.Greater(t, len(q), 100)
		assert.Equal(t, "application deadline admission requirements tuition cost 2026 2027", v.SearchQuery(q, now))
	})

	t.Run("long query without topics is verbatim", func(t *testing.T) {
		q := strings.Repeat("tell me about the campus culture and the dorms ", 4)
		assert.Equal(t, q, v.SearchQuery(q, now))
	})

	t.Run("exactly at threshold is verbatim", func(t *testing.T) {
		q := "deadline" + strings.Repeat("x", 92)
		require.Len(t, q, 100)
		assert.Equal(t, q, v.SearchQuery(q, now))
	})
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keywords": ["Housing", "meal plan"]}`), 0o600))

	v, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"housing", "meal plan"}, v.Keywords)
	assert.Equal(t, Default().Domains, v.Domains)
	assert.Equal(t, 100, v.LongQueryThreshold)
	assert.True(t, v.NeedsSearch("What is housing like?"))
	assert.False(t, v.NeedsSearch("When is the deadline?"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	v, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), v)
}
