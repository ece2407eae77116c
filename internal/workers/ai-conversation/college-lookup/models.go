// internal/workers/ai-conversation/college-lookup/models.go
package collegelookup

import "college-tracker/internal/models"

type Input struct {
	Name    string              `json:"name"`
	Profile *models.UserProfile `json:"profile,omitempty"`
	// Add stores the result and publishes an open-college event.
	Add bool `json:"add"`
}

type Output struct {
	College models.College `json:"college"`
	Added   bool           `json:"added"`
}
