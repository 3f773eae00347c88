package chat

import (
	"errors"
	"testing"

	"guideme/pkg/api"
)

func newTestOrchestrator() *Orchestrator {
	conv := NewConversation()
	conv.SetValidated(true)
	return NewOrchestrator(conv, "Tourist", "gemini-pro-latest")
}

func TestBeginRejectsEmptyInput(t *testing.T) {
	o := newTestOrchestrator()

	for _, input := range []string{"", "   ", "\n\t "} {
		if _, err := o.Begin(input); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Begin(%q) error = %v, want ErrEmptyMessage", input, err)
		}
	}

	if o.Conversation().Len() != 0 {
		t.Errorf("rejected submissions must leave history unchanged, got %d messages", o.Conversation().Len())
	}
	if o.Phase() != PhaseIdle {
		t.Error("rejected submission must leave orchestrator idle")
	}
}

func TestBeginRejectsWhenNotValidated(t *testing.T) {
	conv := NewConversation()
	o := NewOrchestrator(conv, "Tourist", "gemini-pro-latest")

	if _, err := o.Begin("hello"); !errors.Is(err, ErrNotValidated) {
		t.Errorf("Begin() error = %v, want ErrNotValidated", err)
	}
	if conv.Len() != 0 {
		t.Error("gate rejection must not append anything")
	}
}

func TestBeginAppendsUserMessageOptimistically(t *testing.T) {
	o := newTestOrchestrator()

	req, err := o.Begin("  where should I go in Kerala?  ")
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	if req.Message != "where should I go in Kerala?" {
		t.Errorf("request message not trimmed: %q", req.Message)
	}
	if req.Role != "Tourist" || req.Model != "gemini-pro-latest" {
		t.Errorf("request missing fixed tags: role=%q model=%q", req.Role, req.Model)
	}
	if req.SessionID != o.Conversation().SessionID() {
		t.Error("request must carry the current session id")
	}

	// The user message is appended before the remote call resolves, and the
	// history sent on the wire includes it.
	if o.Conversation().Len() != 1 {
		t.Fatalf("expected 1 message after Begin, got %d", o.Conversation().Len())
	}
	if len(req.ChatHistory) != 1 || req.ChatHistory[0].Content != "where should I go in Kerala?" {
		t.Errorf("wire history should include the new user message, got %+v", req.ChatHistory)
	}
	if o.Phase() != PhaseSubmitting {
		t.Error("expected PhaseSubmitting after Begin")
	}
}

func TestBeginRejectsOverlappingExchange(t *testing.T) {
	o := newTestOrchestrator()

	if _, err := o.Begin("first"); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if _, err := o.Begin("second"); !errors.Is(err, ErrExchangePending) {
		t.Errorf("second Begin error = %v, want ErrExchangePending", err)
	}
	if o.Conversation().Len() != 1 {
		t.Errorf("rejected overlap must not append, got %d messages", o.Conversation().Len())
	}
}

func TestSettleSuccess(t *testing.T) {
	o := newTestOrchestrator()
	if _, err := o.Begin("hello"); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	outcome := o.Settle(api.Result{Text: "Namaste! How can I help?", SessionID: "session_srv"}, nil)

	if outcome.Kind != OutcomeSuccess {
		t.Fatalf("outcome kind = %v, want OutcomeSuccess", outcome.Kind)
	}
	if outcome.Reply != "Namaste! How can I help?" {
		t.Errorf("outcome reply = %q", outcome.Reply)
	}

	history := o.Conversation().History()
	if len(history) != 2 {
		t.Fatalf("expected exactly one user and one assistant message, got %d", len(history))
	}
	if history[0].Role != RoleUser || history[1].Role != RoleAssistant {
		t.Errorf("messages out of order: %q then %q", history[0].Role, history[1].Role)
	}
	if history[1].Content != "Namaste! How can I help?" {
		t.Error("assistant message must store the unformatted reply text")
	}
	if o.Conversation().SessionID() != "session_srv" {
		t.Error("server-supplied session id must be adopted")
	}
	if o.Phase() != PhaseIdle {
		t.Error("expected PhaseIdle after settle")
	}
}

func TestSettleRemoteFailure(t *testing.T) {
	o := newTestOrchestrator()
	if _, err := o.Begin("hello"); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	outcome := o.Settle(api.Result{}, &api.RemoteError{Message: "quota exceeded"})

	if outcome.Kind != OutcomeRemoteFailure {
		t.Fatalf("outcome kind = %v, want OutcomeRemoteFailure", outcome.Kind)
	}
	if outcome.ErrMessage != "quota exceeded" {
		t.Errorf("outcome error = %q", outcome.ErrMessage)
	}

	// The optimistic user message is never rolled back, and failures are not
	// stored as messages.
	history := o.Conversation().History()
	if len(history) != 1 || history[0].Role != RoleUser {
		t.Errorf("expected exactly the user message, got %+v", history)
	}
	if o.Phase() != PhaseIdle {
		t.Error("a failed exchange must return to idle")
	}
}

func TestSettleTransportFailure(t *testing.T) {
	o := newTestOrchestrator()
	if _, err := o.Begin("hello"); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	outcome := o.Settle(api.Result{}, errors.New("connection refused"))

	if outcome.Kind != OutcomeTransportFailure {
		t.Fatalf("outcome kind = %v, want OutcomeTransportFailure", outcome.Kind)
	}
	if outcome.ErrMessage != "connection refused" {
		t.Errorf("outcome error = %q", outcome.ErrMessage)
	}
	if o.Conversation().Len() != 1 {
		t.Error("transport failure must keep the optimistic user message only")
	}
}

func TestExchangeAfterFailureStillWorks(t *testing.T) {
	// Each exchange is independent: no retry happens, but a fresh
	// user-initiated submission goes through after a failure.
	o := newTestOrchestrator()

	if _, err := o.Begin("first"); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	o.Settle(api.Result{}, errors.New("boom"))

	if _, err := o.Begin("second"); err != nil {
		t.Fatalf("Begin() after failure should succeed, got %v", err)
	}
	outcome := o.Settle(api.Result{Text: "reply"}, nil)
	if outcome.Kind != OutcomeSuccess {
		t.Errorf("outcome kind = %v, want OutcomeSuccess", outcome.Kind)
	}
	if o.Conversation().Len() != 3 {
		t.Errorf("expected 3 messages (user, user, assistant), got %d", o.Conversation().Len())
	}
}
