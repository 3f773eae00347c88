package api

// HistoryMessage is one prior conversation entry sent for server-side
// context. The server, not the client, is the source of truth for
// conversational memory beyond this hint.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	Message     string           `json:"message"`
	Role        string           `json:"role"`
	Model       string           `json:"model"`
	SessionID   string           `json:"session_id"`
	ChatHistory []HistoryMessage `json:"chat_history"`
}

// chatResponse covers both response conventions the endpoint is known to
// use: a success-flagged shape {success, response, session_id} and a bare
// message-flagged shape {message}. Normalization happens in Client.Chat.
type chatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Error     string `json:"error"`
}

// Result is the normalized outcome of a successful chat call.
type Result struct {
	Text      string
	SessionID string
}

// RemoteError is a failure reported by the endpoint itself, as opposed to a
// transport failure where the call could not complete at all.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

type validateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type modelsResponse struct {
	Success bool              `json:"success"`
	Models  map[string]string `json:"models"`
	Error   string            `json:"error"`
}

type rolesResponse struct {
	Success bool              `json:"success"`
	Roles   map[string]string `json:"roles"`
	Error   string            `json:"error"`
}
