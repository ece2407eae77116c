// internal/workers/ai-conversation/college-lookup/extract.go
package collegelookup

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Extractor recovers one JSON object from free-form generated text.
type Extractor interface {
	Extract(text string) (map[string]interface{}, bool)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(text string) (map[string]interface{}, bool)

func (f ExtractorFunc) Extract(text string) (map[string]interface{}, bool) {
	return f(text)
}

// DefaultExtractor is the lenient three-step recovery used by lookups.
var DefaultExtractor Extractor = ExtractorFunc(ExtractJSONObject)

var fencedBlock = regexp.MustCompile("(?s)```(?:json|JSON)?[ \t]*\r?\n?(.*?)```")

// ExtractJSONObject tries, in order: the whole text, each fenced code block,
// and the span from the first '{' to the last '}'.
func ExtractJSONObject(text string) (map[string]interface{}, bool) {
	if obj, ok := decodeObject(text); ok {
		return obj, true
	}

	for _, m := range fencedBlock.FindAllStringSubmatch(text, -1) {
		if obj, ok := decodeObject(m[1]); ok {
			return obj, true
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if obj, ok := decodeObject(text[start : end+1]); ok {
			return obj, true
		}
	}
	return nil, false
}

func decodeObject(s string) (map[string]interface{}, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
