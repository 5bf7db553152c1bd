package gpterm

import (
	"context"
	"time"
)

// DefaultConversationID names the conversation log file.
const DefaultConversationID = "history"

// Relay takes one line of user input through the history policy, the
// conversation log and a Chat turn. Both frontends use it so they share
// exactly the same conversation semantics.
type Relay struct {
	Chat   *Chat
	Policy HistoryPolicy

	// Log receives one line per user message and assistant reply. Nil
	// disables conversation logging.
	Log            LogSink
	ConversationID string

	// OnLogError is told about log failures. They never abort the turn.
	OnLogError func(error)
}

// Send runs one turn for input against session and returns the outcome.
// When the turn fails the user message is taken back out of the
// transcript, so the next request never carries two user messages in a
// row. The conversation log keeps it.
func (r *Relay) Send(ctx context.Context, session *Session, input string, sink Sink) (TurnResult, error) {
	r.Policy.Apply(&session.Transcript)
	if session.SystemPrompt != "" && !hasSystem(&session.Transcript) {
		session.Transcript.Messages = append([]Message{{Role: RoleSystem, Content: session.SystemPrompt}}, session.Transcript.Messages...)
	}

	r.log(RoleUser, input)
	before := session.Transcript.Len()
	session.Transcript.Append(RoleUser, input)
	session.UpdatedAt = time.Now()

	res, err := r.Chat.Turn(ctx, &session.Transcript, sink)
	if err != nil {
		session.Transcript.Messages = session.Transcript.Messages[:before]
		return res, err
	}
	r.log(RoleAssistant, res.Text)
	session.UpdatedAt = time.Now()
	return res, nil
}

func (r *Relay) log(role Role, text string) {
	if r.Log == nil {
		return
	}
	id := r.ConversationID
	if id == "" {
		id = DefaultConversationID
	}
	if err := r.Log.Append(id, string(role)+": "+text); err != nil && r.OnLogError != nil {
		r.OnLogError(err)
	}
}

func hasSystem(t *Transcript) bool {
	return t.Len() > 0 && t.Messages[0].Role == RoleSystem
}
