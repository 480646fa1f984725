package domain

import "context"

// MessageRole tags a chat message with its author.
type MessageRole string

const (
	RoleSystem MessageRole = "system"
	RoleUser   MessageRole = "user"
)

// ChatMessage is a single role-tagged message sent to the completion API.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// CompletionClient sends a conversation to a hosted language model and
// returns its reply text. Failures are returned as-is; callers do not retry.
type CompletionClient interface {
	Complete(ctx context.Context, messages []ChatMessage, model string) (string, error)
}
