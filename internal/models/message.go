// internal/models/message.go
package models

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type MessageMetadata struct {
	SearchQuery string   `json:"searchQuery,omitempty"`
	Sources     []string `json:"sources,omitempty"`
}

// AIMessage is one conversation turn. The chat shell owns the history;
// IsSearching is only set while a query is in flight.
type AIMessage struct {
	ID          string           `json:"id"`
	Role        MessageRole      `json:"type"`
	Content     string           `json:"content"`
	Timestamp   string           `json:"timestamp"`
	IsSearching bool             `json:"isSearching,omitempty"`
	Metadata    *MessageMetadata `json:"metadata,omitempty"`
}
