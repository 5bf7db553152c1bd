package gpterm

import "fmt"

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one role-tagged entry in a conversation.
type Message struct {
	Role    Role
	Content string
}

// Transcript is the ordered conversation sent with every request.
type Transcript struct {
	Messages []Message
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(role Role, content string) {
	t.Messages = append(t.Messages, Message{Role: role, Content: content})
}

// Len returns the number of messages.
func (t *Transcript) Len() int { return len(t.Messages) }

// Clear drops every message.
func (t *Transcript) Clear() { t.Messages = nil }

// Snapshot returns a copy of the messages that later appends cannot alias.
func (t *Transcript) Snapshot() []Message {
	out := make([]Message, len(t.Messages))
	copy(out, t.Messages)
	return out
}

// ValidateMessage checks that a message has a known role.
func ValidateMessage(msg Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("unknown role %q: %w", msg.Role, ErrValidation)
	}
	return nil
}
