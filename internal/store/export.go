package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"college-tracker/internal/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Snapshot is everything the store holds, as written by Export.
type Snapshot struct {
	ExportedAt string                   `json:"exportedAt"`
	Colleges   []models.College         `json:"colleges"`
	Tasks      []models.ApplicationTask `json:"applicationTasks"`
	Columns    []models.TaskColumn      `json:"taskColumns"`
	Profile    *models.UserProfile      `json:"userProfile,omitempty"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ExportedAt: s.now().UTC().Format(time.RFC3339),
		Colleges:   cloneColleges(s.colleges),
		Tasks:      cloneTasks(s.tasks),
		Columns:    cloneColumns(s.columns),
		Profile:    s.profile.Clone(),
	}
}

// Export encodes the snapshot as json, yaml or toml. Field names are the JSON
// names in every format, and custom tracker columns stay flat in their rows.
func (s *Store) Export(format string) ([]byte, error) {
	snap := s.Snapshot()

	switch strings.ToLower(format) {
	case "", "json":
		return json.MarshalIndent(snap, "", "  ")
	case "yaml", "yml":
		doc, err := genericDocument(snap)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "toml":
		doc, err := genericDocument(snap)
		if err != nil {
			return nil, err
		}
		out, err := toml.Marshal(dropNulls(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to encode toml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (want json, yaml or toml)", format)
	}
}

// genericDocument round-trips through JSON so the model's JSON names and
// custom marshalling apply to every output format.
func genericDocument(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// dropNulls removes null values, which TOML cannot represent.
func dropNulls(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = dropNulls(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			if val == nil {
				continue
			}
			out = append(out, dropNulls(val))
		}
		return out
	default:
		return v
	}
}
