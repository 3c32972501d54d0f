package models

// Role identifies the author of a message turn.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation. Immutable once created;
// content may be empty.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Human returns a user-authored message.
func Human(content string) Message {
	return Message{Role: RoleHuman, Content: content}
}

// Assistant returns a model-authored message.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
