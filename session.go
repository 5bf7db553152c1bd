package gpterm

import "time"

// Session is a conversation that can be saved and resumed.
type Session struct {
	ID           string
	SystemPrompt string
	Transcript   Transcript
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
