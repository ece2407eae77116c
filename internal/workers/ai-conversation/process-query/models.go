// internal/workers/ai-conversation/process-query/models.go
package processquery

import "college-tracker/internal/models"

type Input struct {
	Query       string              `json:"query"`
	Colleges    []models.College    `json:"colleges"`
	AllowSearch bool                `json:"allowSearch"`
	Profile     *models.UserProfile `json:"profile,omitempty"`
}

type Output = models.AIResponse
