// internal/workers/ai-conversation/llm-synthesis/models.go
package llmsynthesis

type Input struct {
	Prompt string `json:"prompt"`
}

type Output struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	FinishReason string `json:"finishReason,omitempty"`
}
