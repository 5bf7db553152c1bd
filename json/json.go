// Package json persists gpterm sessions as JSON files.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gpterm/gpterm"
)

const envelopeVersion = 1

// envelope is the v1 wire format for a persisted session.
type envelope struct {
	Version      int          `json:"version"`
	ID           string       `json:"id"`
	SystemPrompt string       `json:"system_prompt,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Messages     []messageDTO `json:"messages"`
}

type messageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MarshalSession serializes a Session to JSON in v1 envelope format.
func MarshalSession(s gpterm.Session) ([]byte, error) {
	env := envelope{
		Version:      envelopeVersion,
		ID:           s.ID,
		SystemPrompt: s.SystemPrompt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Messages:     make([]messageDTO, len(s.Transcript.Messages)),
	}
	for i, msg := range s.Transcript.Messages {
		if err := gpterm.ValidateMessage(msg); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		env.Messages[i] = messageDTO{Role: string(msg.Role), Content: msg.Content}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSession deserializes a Session from JSON in v1 envelope format.
func UnmarshalSession(data []byte) (gpterm.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return gpterm.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != envelopeVersion {
		return gpterm.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	msgs := make([]gpterm.Message, len(env.Messages))
	for i, dto := range env.Messages {
		msg := gpterm.Message{Role: gpterm.Role(dto.Role), Content: dto.Content}
		if err := gpterm.ValidateMessage(msg); err != nil {
			return gpterm.Session{}, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = msg
	}
	return gpterm.Session{
		ID:           env.ID,
		SystemPrompt: env.SystemPrompt,
		CreatedAt:    env.CreatedAt,
		UpdatedAt:    env.UpdatedAt,
		Transcript:   gpterm.Transcript{Messages: msgs},
	}, nil
}

// Save writes a Session to a JSON file, creating parent directories as needed.
// The file is replaced atomically.
func Save(path string, s gpterm.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Session from a JSON file.
func Load(path string) (gpterm.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gpterm.Session{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSession(data)
}
