package chat

import (
	"errors"
	"log/slog"
	"strings"

	"guideme/pkg/api"
)

// Guard sentinels returned by Begin. All three mean "nothing happened": a
// rejected submission is a no-op, not a failure of the widget.
var (
	ErrEmptyMessage    = errors.New("chat: message is empty")
	ErrNotValidated    = errors.New("chat: endpoint not validated")
	ErrExchangePending = errors.New("chat: an exchange is already pending")
)

// Phase is the orchestrator's position in the exchange state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
)

// OutcomeKind classifies how an exchange settled.
type OutcomeKind int

const (
	// OutcomeSuccess means the endpoint returned reply text.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeRemoteFailure means the endpoint responded but signalled failure.
	OutcomeRemoteFailure
	// OutcomeTransportFailure means the call could not complete at all.
	OutcomeTransportFailure
)

// Outcome is the settled result of one exchange.
type Outcome struct {
	Kind       OutcomeKind
	Reply      string // raw assistant text, set on success
	ErrMessage string // human-readable reason, set on failure
}

// Orchestrator drives one submit cycle at a time: guard the submission,
// append the user message optimistically, hand the wire request to the
// caller, and reconcile the settled result back into the conversation.
// Begin and Settle must run on the same event loop; only the remote call
// itself happens elsewhere.
type Orchestrator struct {
	conv  *Conversation
	role  string
	model string
	phase Phase
}

// NewOrchestrator creates an orchestrator bound to a conversation, with the
// fixed role and model tags sent on every request.
func NewOrchestrator(conv *Conversation, role, model string) *Orchestrator {
	return &Orchestrator{conv: conv, role: role, model: model}
}

// Phase returns the current exchange phase.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// Conversation returns the conversation the orchestrator mutates.
func (o *Orchestrator) Conversation() *Conversation {
	return o.conv
}

// Begin validates a submission and opens an exchange. On success the user
// message has already been appended to the history (optimistically, before
// the remote call resolves) and the returned request carries the trimmed
// message, the fixed role and model tags, the current session id and the
// full history. A second Begin while one exchange is pending is rejected
// with ErrExchangePending; the overlap the original widget allowed is a
// hazard, not a feature.
func (o *Orchestrator) Begin(text string) (api.ChatRequest, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return api.ChatRequest{}, ErrEmptyMessage
	}
	if !o.conv.Validated() {
		return api.ChatRequest{}, ErrNotValidated
	}
	if o.phase == PhaseSubmitting {
		return api.ChatRequest{}, ErrExchangePending
	}

	o.conv.Append(Message{Role: RoleUser, Content: trimmed})
	o.phase = PhaseSubmitting

	history := o.conv.History()
	wire := make([]api.HistoryMessage, len(history))
	for i, msg := range history {
		wire[i] = api.HistoryMessage{Role: msg.Role, Content: msg.Content}
	}

	slog.Info("exchange_begin",
		"session_id", o.conv.SessionID(),
		"history_messages", len(wire))

	return api.ChatRequest{
		Message:     trimmed,
		Role:        o.role,
		Model:       o.model,
		SessionID:   o.conv.SessionID(),
		ChatHistory: wire,
	}, nil
}

// Settle reconciles the result of the remote call and returns the exchange
// to idle. On success the assistant message is appended with the raw,
// unformatted reply text and any server-supplied session id is adopted. On
// failure nothing is appended and nothing is rolled back: the optimistic
// user message stays.
func (o *Orchestrator) Settle(res api.Result, err error) Outcome {
	o.phase = PhaseIdle

	if err != nil {
		var remote *api.RemoteError
		if errors.As(err, &remote) {
			slog.Warn("exchange_remote_failure", "error", remote.Message)
			return Outcome{Kind: OutcomeRemoteFailure, ErrMessage: remote.Message}
		}
		slog.Warn("exchange_transport_failure", "error", err)
		return Outcome{Kind: OutcomeTransportFailure, ErrMessage: err.Error()}
	}

	o.conv.Append(Message{Role: RoleAssistant, Content: res.Text})
	o.conv.AdoptSessionID(res.SessionID)

	slog.Info("exchange_success",
		"session_id", o.conv.SessionID(),
		"reply_size", len(res.Text))

	return Outcome{Kind: OutcomeSuccess, Reply: res.Text}
}
