package entities

// Role identifies who authored a conversation turn
type Role string

const (
	RoleNurse     Role = "nurse"
	RoleAssistant Role = "assistant"
)

// GreetingText is the fixed assistant turn every conversation starts with
const GreetingText = "Hi! Ask me patient and scheduling details. Try: \"Give me the patient's first name, last name, and DOB.\" or \"Who is the provider for the next appointment?\""

// Turn is one entry in the conversation log.
// Payload is only ever set on assistant turns produced by a backend exchange.
type Turn struct {
	Role    Role          `json:"role"`
	Text    string        `json:"text"`
	Payload *AssistResult `json:"payload,omitempty"`
}

// NewNurseTurn creates the operator's side of an exchange
func NewNurseTurn(text string) Turn {
	return Turn{Role: RoleNurse, Text: text}
}

// NewAssistantTurn creates the assistant's side of an exchange
func NewAssistantTurn(result *AssistResult) Turn {
	return Turn{Role: RoleAssistant, Text: result.Wording, Payload: result}
}

// GreetingTurn returns the opening assistant turn
func GreetingTurn() Turn {
	return Turn{Role: RoleAssistant, Text: GreetingText}
}

// HasPayload reports whether the turn is an assistant turn carrying structured data
func (t Turn) HasPayload() bool {
	return t.Role == RoleAssistant && t.Payload != nil
}
