package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer   Action = "answer"
	ActionNavigate Action = "navigate"
	ActionMark     Action = "mark"
	ActionSubmit   Action = "submit"
	ActionState    Action = "state"
	ActionPing     Action = "ping"
)

// RequestPayload is one client message. Only the fields of its action are
// read.
type RequestPayload struct {
	Action    Action `json:"action"`
	Index     *int   `json:"index,omitempty"`
	Option    *int   `json:"option,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventState     Event = "state"
	EventTick      Event = "tick"
	EventSubmitted Event = "submitted"
	EventPong      Event = "pong"
)

// StateResponse carries the flow state after an action.
type StateResponse struct {
	Event Event       `json:"event"`
	State interface{} `json:"state"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
