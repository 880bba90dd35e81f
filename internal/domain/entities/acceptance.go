package entities

import (
	"encoding/json"
	"fmt"
)

// Acceptance is the tri-state insurance verdict: accepted, rejected, or unknown.
// The zero value is unknown, which is what JSON null decodes to.
type Acceptance int

const (
	AcceptanceUnknown Acceptance = iota
	AcceptanceAccepted
	AcceptanceRejected
)

// AcceptanceOf converts an optional boolean into an Acceptance
func AcceptanceOf(accepted *bool) Acceptance {
	switch {
	case accepted == nil:
		return AcceptanceUnknown
	case *accepted:
		return AcceptanceAccepted
	default:
		return AcceptanceRejected
	}
}

func (a Acceptance) String() string {
	switch a {
	case AcceptanceAccepted:
		return "accepted"
	case AcceptanceRejected:
		return "not accepted"
	default:
		return "unknown"
	}
}

func (a Acceptance) MarshalJSON() ([]byte, error) {
	switch a {
	case AcceptanceAccepted:
		return []byte("true"), nil
	case AcceptanceRejected:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (a *Acceptance) UnmarshalJSON(data []byte) error {
	var accepted *bool
	if err := json.Unmarshal(data, &accepted); err != nil {
		return fmt.Errorf("accepted must be true, false or null: %w", err)
	}
	*a = AcceptanceOf(accepted)
	return nil
}
