// pkg/vocabulary/schema.go
package vocabulary

// Vocabulary is the data that decides when a question warrants a web search
// and how long questions are condensed into a search query.
type Vocabulary struct {
	Version string `json:"version"`

	// Keywords trigger a search when any appears as a substring of the lower-cased question.
	Keywords []string `json:"keywords"`

	// Topics map a keyword to the phrase used in a condensed search query. Order is kept.
	Topics []Topic `json:"topics"`

	// Domains restrict search results to matching sites.
	Domains []string `json:"domains"`

	// LongQueryThreshold is the length in characters above which a question is condensed.
	LongQueryThreshold int `json:"longQueryThreshold"`
}

type Topic struct {
	Keyword string `json:"keyword"`
	Phrase  string `json:"phrase"`
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	return &Vocabulary{
		Version: "1",
		Keywords: []string{
			"deadline", "requirement", "admission", "scholarship", "application fee",
			"test score", "gpa", "essay prompt", "interview", "acceptance rate",
			"tuition", "financial aid", "early decision", "early action", "waitlist",
			"deferral", "latest", "current", "recent", "new", "updated",
		},
		Topics: []Topic{
			{Keyword: "deadline", Phrase: "application deadline"},
			{Keyword: "requirement", Phrase: "admission requirements"},
			{Keyword: "scholarship", Phrase: "scholarships"},
			{Keyword: "tuition", Phrase: "tuition cost"},
		},
		Domains: []string{
			"edu", "college", "university", "admissions", "collegeboard.org", "commonapp.org",
		},
		LongQueryThreshold: 100,
	}
}
