// Package provider defines the completion gateway consumed by the
// orchestration core. A Completer is a stateless call: given a model and a
// message list, it returns the model's response text.
package provider

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message sent to a model.
type Message struct {
	Role    Role
	Content string
}

// Completer issues one blocking completion request against a model and
// returns the full response text. Implementations must be safe for
// sequential reuse across calls; no retry policy is applied here.
type Completer interface {
	// Name identifies the backend ("ollama", "anthropic").
	Name() string
	// Complete sends the messages to the given model and returns its reply.
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// UserMessage is a convenience constructor for the common single user
// message request shape.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}
