package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnswerKind tags which variant an Answer holds
type AnswerKind string

const (
	AnswerKindProvider  AnswerKind = "provider"
	AnswerKindInsurance AnswerKind = "insurance"
	AnswerKindUnknown   AnswerKind = "unknown"
)

// Appointment types assigned by the scheduling backend
const (
	AppointmentTypeNew         = "NEW"
	AppointmentTypeEstablished = "ESTABLISHED"
)

// Answer is one element of AssistPayload.Answers.
// Exactly one of Provider or Insurance is set, matching Kind. Answers of an
// unrecognised shape keep their raw JSON and are ignored by consumers.
type Answer struct {
	Kind      AnswerKind
	Provider  *ProviderAnswer
	Insurance *InsuranceAnswer
	Raw       json.RawMessage
}

// ProviderAnswer describes a provider the patient can be scheduled with
type ProviderAnswer struct {
	Provider        string `json:"provider"`
	Certification   string `json:"certification,omitempty"`
	Specialty       string `json:"specialty,omitempty"`
	Department      string `json:"department,omitempty"`
	Address         string `json:"address,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Hours           string `json:"hours,omitempty"`
	AppointmentType string `json:"appointment_type,omitempty"`
	SuggestedSlot   string `json:"suggested_slot,omitempty"`
}

// InsuranceAnswer is the eligibility verdict for the patient's insurance.
// Insurance is nil when no insurance is on file.
type InsuranceAnswer struct {
	Insurance     *string        `json:"insurance"`
	Accepted      Acceptance     `json:"accepted"`
	SelfPayQuotes []SelfPayQuote `json:"self_pay_quotes,omitempty"`
	Message       string         `json:"message,omitempty"`
}

// SelfPayQuote is the self-pay rate offered for a specialty when insurance is out of network
type SelfPayQuote struct {
	Specialty string  `json:"specialty"`
	SelfPay   float64 `json:"self_pay"`
}

// NewProviderAnswer wraps p as an Answer
func NewProviderAnswer(p ProviderAnswer) Answer {
	return Answer{Kind: AnswerKindProvider, Provider: &p}
}

// NewInsuranceAnswer wraps i as an Answer
func NewInsuranceAnswer(i InsuranceAnswer) Answer {
	return Answer{Kind: AnswerKindInsurance, Insurance: &i}
}

// InsuranceName returns the insurance name or an empty string when none is on file
func (i *InsuranceAnswer) InsuranceName() string {
	if i == nil || i.Insurance == nil {
		return ""
	}
	return *i.Insurance
}

// UnmarshalJSON decides the variant once, at decode time.
// An explicit "kind" key wins. Otherwise a non-empty "provider" key selects a
// provider answer and an "insurance" key (null included) selects an insurance
// answer. Anything else is kept as an unknown answer.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("answer must be a JSON object: %w", err)
	}

	*a = Answer{Kind: detectAnswerKind(fields)}

	switch a.Kind {
	case AnswerKindProvider:
		var p ProviderAnswer
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decoding provider answer: %w", err)
		}
		a.Provider = &p
	case AnswerKindInsurance:
		var i InsuranceAnswer
		if err := json.Unmarshal(data, &i); err != nil {
			return fmt.Errorf("decoding insurance answer: %w", err)
		}
		a.Insurance = &i
	default:
		a.Raw = append(json.RawMessage(nil), data...)
	}
	return nil
}

// MarshalJSON emits the variant's fields together with an explicit "kind"
func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.Kind == AnswerKindProvider && a.Provider != nil:
		return json.Marshal(struct {
			Kind AnswerKind `json:"kind"`
			*ProviderAnswer
		}{a.Kind, a.Provider})
	case a.Kind == AnswerKindInsurance && a.Insurance != nil:
		return json.Marshal(struct {
			Kind AnswerKind `json:"kind"`
			*InsuranceAnswer
		}{a.Kind, a.Insurance})
	case len(a.Raw) > 0:
		return a.Raw, nil
	default:
		return []byte("null"), nil
	}
}

func detectAnswerKind(fields map[string]json.RawMessage) AnswerKind {
	if raw, ok := fields["kind"]; ok {
		var kind AnswerKind
		if err := json.Unmarshal(raw, &kind); err == nil {
			switch kind {
			case AnswerKindProvider, AnswerKindInsurance:
				return kind
			}
		}
	}
	if raw, ok := fields["provider"]; ok && !isBlankProvider(raw) {
		return AnswerKindProvider
	}
	if _, ok := fields["insurance"]; ok {
		return AnswerKindInsurance
	}
	return AnswerKindUnknown
}

// isBlankProvider reports a null or empty-string provider name
func isBlankProvider(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`))
}
