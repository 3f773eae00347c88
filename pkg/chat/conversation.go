// Package chat owns the conversation state and the lifecycle of a single
// message exchange with the Guide Me endpoint.
package chat

import (
	"github.com/google/uuid"
)

// Message roles as sent on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the conversation history. Messages are never
// mutated after creation; ordering is chronological and append-only.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation holds the session identity and ordered message log for one
// logical conversation. It lives for the duration of the program run and is
// never persisted.
type Conversation struct {
	sessionID string
	history   []Message
	validated bool
}

// NewConversation creates an empty conversation with a fresh session id.
func NewConversation() *Conversation {
	return &Conversation{sessionID: newSessionID()}
}

func newSessionID() string {
	return "session_" + uuid.NewString()
}

// Append adds a message to the history. Content is stored as-is; formatting
// is a render-time projection, never a stored transformation.
func (c *Conversation) Append(msg Message) {
	c.history = append(c.history, msg)
}

// Reset clears the history and generates a new session id. The validated
// flag is left untouched.
func (c *Conversation) Reset() {
	c.history = nil
	c.sessionID = newSessionID()
}

// AdoptSessionID overwrites the local session id with a server-assigned one.
// The endpoint is authoritative for session identity once a reply carries an
// id; an empty id is ignored.
func (c *Conversation) AdoptSessionID(id string) {
	if id != "" {
		c.sessionID = id
	}
}

// History returns a copy of the message log in chronological order.
func (c *Conversation) History() []Message {
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}

// Len returns the number of messages in the history.
func (c *Conversation) Len() int {
	return len(c.history)
}

// SessionID returns the current session identity.
func (c *Conversation) SessionID() string {
	return c.sessionID
}

// Validated reports whether the remote endpoint accepted the key check.
func (c *Conversation) Validated() bool {
	return c.validated
}

// SetValidated records the outcome of the remote key validation.
func (c *Conversation) SetValidated(ok bool) {
	c.validated = ok
}
