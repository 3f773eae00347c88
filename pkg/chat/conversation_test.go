package chat

import (
	"strings"
	"testing"
)

func TestNewConversation(t *testing.T) {
	conv := NewConversation()

	if conv.Len() != 0 {
		t.Errorf("expected empty history, got %d messages", conv.Len())
	}
	if !strings.HasPrefix(conv.SessionID(), "session_") {
		t.Errorf("expected session id with session_ prefix, got %q", conv.SessionID())
	}
	if conv.Validated() {
		t.Error("new conversation must not start validated")
	}
}

func TestConversationAppendPreservesOrder(t *testing.T) {
	conv := NewConversation()
	conv.Append(Message{Role: RoleUser, Content: "first"})
	conv.Append(Message{Role: RoleAssistant, Content: "second"})
	conv.Append(Message{Role: RoleUser, Content: "third"})

	history := conv.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
	want := []string{"first", "second", "third"}
	for i, content := range want {
		if history[i].Content != content {
			t.Errorf("history[%d].Content = %q, want %q", i, history[i].Content, content)
		}
	}
}

func TestConversationReset(t *testing.T) {
	conv := NewConversation()
	conv.SetValidated(true)
	conv.Append(Message{Role: RoleUser, Content: "hello"})
	before := conv.SessionID()

	conv.Reset()

	if conv.Len() != 0 {
		t.Errorf("expected empty history after reset, got %d messages", conv.Len())
	}
	if conv.SessionID() == before {
		t.Error("reset must generate a new session id")
	}
	if !conv.Validated() {
		t.Error("reset must leave the validated flag untouched")
	}
}

func TestConversationAdoptSessionID(t *testing.T) {
	conv := NewConversation()
	original := conv.SessionID()

	conv.AdoptSessionID("session_from_server")
	if conv.SessionID() != "session_from_server" {
		t.Errorf("expected adopted session id, got %q", conv.SessionID())
	}

	// Empty ids are ignored: the server supplied nothing to adopt.
	conv.AdoptSessionID("")
	if conv.SessionID() != "session_from_server" {
		t.Errorf("empty id must not overwrite, got %q", conv.SessionID())
	}

	if conv.SessionID() == original {
		t.Error("adopted id should differ from the locally generated one")
	}
}

func TestConversationHistoryIsACopy(t *testing.T) {
	conv := NewConversation()
	conv.Append(Message{Role: RoleUser, Content: "original"})

	history := conv.History()
	history[0].Content = "mutated"

	if conv.History()[0].Content != "original" {
		t.Error("History() must return a copy, not the backing slice")
	}
}
