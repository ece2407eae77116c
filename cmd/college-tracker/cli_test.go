// cmd/college-tracker/cli_test.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"college-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Environment
// ==========================

type testEnv struct {
	t           *testing.T
	dir         string
	configPath  string
	genCalls    int32
	searchCalls int32

	mu      sync.Mutex
	reply   string
	prompts []string
}

type envOption func(*envConfig)

type envConfig struct {
	genKey    string
	searchKey string
}

func withoutGenerationKey() envOption {
	return func(c *envConfig) { c.genKey = "" }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GENAI_API_KEY", "")
	t.Setenv("TAVILY_API_KEY", "")
	t.Setenv("WEB_SEARCH_API_KEY", "")

	cfg := envConfig{genKey: "test-gemini-key", searchKey: "test-tavily-key"}
	for _, opt := range opts {
		opt(&cfg)
	}

	env := &testEnv{t: t, dir: t.TempDir(), reply: "Happy to help with your applications."}

	genServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&env.genCalls, 1)

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		env.mu.Lock()
		if len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			env.prompts = append(env.prompts, body.Contents[0].Parts[0].Text)
		}
		reply := env.reply
		env.mu.Unlock()

		data, _ := json.Marshal(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]interface{}{{"text": reply}},
				}},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(genServer.Close)

	searchServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&env.searchCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"Stanford Admissions","url":"https://admission.stanford.edu/apply","content":"Regular Decision deadline is January 5.","published_date":"2026-08-01"}]}`))
	}))
	t.Cleanup(searchServer.Close)

	config := fmt.Sprintf(`logging:
  level: error
  format: console
  output: %s
apis:
  genai:
    base_url: %s/
    api_key: "%s"
    timeout: 5000
  web_search:
    base_url: %s
    api_key: "%s"
    timeout: 5000
storage:
  backend: file
  file:
    dir: %s
assistant:
  lookup_timeout: 5000
`, filepath.Join(env.dir, "tracker.log"), genServer.URL, cfg.genKey, searchServer.URL, cfg.searchKey, filepath.Join(env.dir, "data"))

	env.configPath = filepath.Join(env.dir, "config.yaml")
	require.NoError(t, os.WriteFile(env.configPath, []byte(config), 0o600))
	return env
}

func (e *testEnv) setReply(reply string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reply = reply
}

func (e *testEnv) lastPrompt() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.prompts) == 0 {
		return ""
	}
	return e.prompts[len(e.prompts)-1]
}

func executeCLI(t *testing.T, env *testEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", env.configPath}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func listColleges(t *testing.T, env *testEnv) []models.College {
	t.Helper()
	stdout, _, err := executeCLI(t, env, "", "college", "list", "--json")
	require.NoError(t, err)
	var colleges []models.College
	require.NoError(t, json.Unmarshal([]byte(stdout), &colleges))
	return colleges
}

func findCollege(t *testing.T, env *testEnv, id string) models.College {
	t.Helper()
	for _, c := range listColleges(t, env) {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("college %s not listed", id)
	return models.College{}
}

// ==========================
// College Commands
// ==========================

func TestCollegeListShowsSamples(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCLI(t, env, "", "college", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stanford University")
	assert.Contains(t, stdout, "National University of Singapore")
	assert.Contains(t, stdout, "MIT")
}

func TestCollegeAddPersistsAcrossRuns(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCLI(t, env, "",
		"college", "add",
		"--name", "Test University",
		"--location", "Springfield, USA",
		"--deadline", "2027-01-01",
		"--fee", "75",
		"--essay", "Personal Statement",
		"--essay", "Why Us",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added Test University")

	var added *models.College
	for _, c := range listColleges(t, env) {
		if c.Name == "Test University" {
			added = &c
		}
	}
	require.NotNil(t, added)
	assert.Equal(t, models.StatusNotStarted, added.Status)
	assert.Equal(t, 75.0, added.ApplicationFee)
	assert.Equal(t, []string{"Personal Statement", "Why Us"}, added.Requirements.Essays)

	stdout, _, err = executeCLI(t, env, "", "college", "show", "test university")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Springfield, USA")
}

func TestCollegeAddRequiresName(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCLI(t, env, "", "college", "add", "--location", "Nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "name" not set`)
}

func TestCollegeUpdateStatusAndRemove(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCLI(t, env, "", "college", "update", "1", "--deadline", "2027-01-05")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, env, "", "college", "status", "Stanford University", "submitted")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stanford University is now submitted")

	stanford := findCollege(t, env, "1")
	assert.Equal(t, "2027-01-05", stanford.ApplicationDeadline)
	assert.Equal(t, models.StatusSubmitted, stanford.Status)

	_, _, err = executeCLI(t, env, "", "college", "remove", "MIT")
	require.NoError(t, err)
	for _, c := range listColleges(t, env) {
		assert.NotEqual(t, "MIT", c.Name)
	}
}

func TestCollegeStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCLI(t, env, "", "college", "status", "1", "accepted")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "accepted"`)
}

func TestCollegeShowUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCLI(t, env, "", "college", "show", "Hogwarts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "college not found")
}

// ==========================
// Task Commands
// ==========================

func TestTaskSetAdmissionResultMovesStatus(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCLI(t, env, "", "task", "set", "3", "admissionResult", "Admitted")
	require.NoError(t, err)

	assert.Equal(t, models.StatusAdmitted, findCollege(t, env, "3").Status)

	stdout, _, err := executeCLI(t, env, "", "task", "list", "--status", "admitted")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Admitted")
}

func TestTaskColumns(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCLI(t, env, "", "task", "add-column", "Portfolio Uploaded")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added column Portfolio Uploaded")

	stdout, _, err = executeCLI(t, env, "", "task", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "PORTFOLIO UPLOADED")

	_, _, err = executeCLI(t, env, "", "task", "delete-column", "college")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be deleted")

	_, _, err = executeCLI(t, env, "", "task", "rename-column", "essays", "Essays Done")
	require.NoError(t, err)
	stdout, _, err = executeCLI(t, env, "", "task", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ESSAYS DONE")
}

// ==========================
// Profile Commands
// ==========================

func TestProfileInitSetShow(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCLI(t, env, "", "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No profile saved")

	stdout, _, err = executeCLI(t, env, "", "profile", "init", "--name", "Asha", "--email", "asha@example.com", "--grade", "11")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Welcome, Asha (grade 11)")

	_, _, err = executeCLI(t, env, "", "profile", "set", "--country", "India", "--gpa", "3.9", "--subject", "Math:A", "--subject", "Physics:A-")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, env, "", "profile", "show")
	require.NoError(t, err)
	var p models.UserProfile
	require.NoError(t, json.Unmarshal([]byte(stdout), &p))
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, models.GradeLevel("11"), p.Grade)
	assert.Equal(t, "India", p.Country)
	assert.Equal(t, []models.Subject{{Name: "Math", Grade: "A"}, {Name: "Physics", Grade: "A-"}}, p.Subjects)
	assert.NotEmpty(t, p.CreatedAt)
}

func TestProfileRejectsInvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCLI(t, env, "", "profile", "init", "--email", "not-an-email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email")
}

// ==========================
// Assistant Commands
// ==========================

func TestAskDeadlineQuestionSearchesAndCites(t *testing.T) {
	env := newTestEnv(t)
	env.setReply("Stanford University's Regular Decision deadline is January 5.")

	stdout, _, err := executeCLI(t, env, "", "ask", "--plain", "What is the application deadline for Stanford?")
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(&env.searchCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&env.genCalls))
	assert.Contains(t, stdout, "Regular Decision deadline is January 5.")
	assert.Contains(t, stdout, "Sources:")
	assert.Contains(t, stdout, "https://admission.stanford.edu/apply")
	assert.Contains(t, stdout, "college show 1")

	prompt := env.lastPrompt()
	assert.Contains(t, prompt, "Current colleges the student is tracking:")
	assert.Contains(t, prompt, `User Question: "What is the application deadline for Stanford?"`)
	assert.Contains(t, prompt, "1. Stanford Admissions")
}

func TestAskWithoutKeywordSkipsSearch(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCLI(t, env, "", "ask", "--plain", "Tell me about campus life")
	require.NoError(t, err)

	assert.Zero(t, atomic.LoadInt32(&env.searchCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&env.genCalls))
	assert.NotContains(t, stdout, "Sources:")
}

func TestAskNoSearchFlag(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCLI(t, env, "", "ask", "--plain", "--no-search", "latest scholarship deadlines?")
	require.NoError(t, err)
	assert.Zero(t, atomic.LoadInt32(&env.searchCalls))
}

func TestAskWithoutGenerationKeyFallsBack(t *testing.T) {
	env := newTestEnv(t, withoutGenerationKey())

	stdout, _, err := executeCLI(t, env, "", "ask", "--json", "Tell me about campus life")
	require.NoError(t, err)

	var resp models.AIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Contains(t, resp.Content, "I'm having trouble connecting to my AI services right now.")
	assert.Contains(t, resp.Content, "Error details:")
	assert.Zero(t, atomic.LoadInt32(&env.genCalls))
}

func TestLookupAddStoresAndOpensCollege(t *testing.T) {
	env := newTestEnv(t)
	env.setReply("```json\n" + `{"name": "Test University", "location": "Springfield, USA", "applicationDeadline": "2027-01-01", "applicationFee": "90 USD", "requirements": {"essays": "Personal Statement, Why Us"}}` + "\n```")

	stdout, _, err := executeCLI(t, env, "", "lookup", "--add", "Test University")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Springfield, USA")
	assert.Contains(t, stdout, "Added Test University")

	var found bool
	for _, c := range listColleges(t, env) {
		if c.Name == "Test University" {
			found = true
			assert.Equal(t, 90.0, c.ApplicationFee)
			assert.Equal(t, []string{"Personal Statement", "Why Us"}, c.Requirements.Essays)
		}
	}
	assert.True(t, found)
	assert.Contains(t, env.lastPrompt(), "structured information for the college: Test University.")
}

func TestLookupWithoutStructuredData(t *testing.T) {
	env := newTestEnv(t)
	env.setReply(`{"location": "Mojave Desert"}`)

	_, _, err := executeCLI(t, env, "", "lookup", "Zzyzx Institute")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No structured data found")
	assert.Contains(t, err.Error(), `Raw AI response: {"location": "Mojave Desert"}`)
	assert.Contains(t, err.Error(), "add it with `college add`")

	for _, c := range listColleges(t, env) {
		assert.NotEqual(t, "Zzyzx Institute", c.Name)
	}
}

func TestChatSession(t *testing.T) {
	env := newTestEnv(t)
	env.setReply("Campus life is lively.")

	input := strings.Join([]string{
		"/search off",
		"What is the deadline for MIT?",
		"/history",
		"/open MIT",
		"/exit",
		"this line is never read",
	}, "\n")

	stdout, _, err := executeCLI(t, env, input, "chat", "--plain")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Web search is off")
	assert.Contains(t, stdout, "Campus life is lively.")
	assert.Contains(t, stdout, "What is the deadline for MIT?")
	assert.Contains(t, stdout, "https://mitadmissions.org/")
	assert.Zero(t, atomic.LoadInt32(&env.searchCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&env.genCalls))
}

func TestChatServesMetrics(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCLI(t, env, "/exit\n", "chat", "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Serving metrics on http://127.0.0.1:")
}

// ==========================
// Reports
// ==========================

func TestStatsJSON(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCLI(t, env, "", "stats", "--json")
	require.NoError(t, err)

	var stats struct {
		Total     int     `json:"total"`
		TotalFees float64 `json:"totalFees"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	assert.Equal(t, 3, stats.Total)
}

func TestExportFormats(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"applicationTasks"`},
		{format: "yaml", want: "colleges:"},
		{format: "toml", want: "Stanford University"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, _, err := executeCLI(t, env, "", "export", "--format", tt.format)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.want)
		})
	}

	out := filepath.Join(env.dir, "backup.json")
	stdout, _, err := executeCLI(t, env, "", "export", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported to")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}
