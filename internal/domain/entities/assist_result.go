package entities

import (
	"encoding/json"
)

// AssistRequest is the body posted to the backend assistant
type AssistRequest struct {
	Message   string `json:"message"`
	PatientID string `json:"patient_id"`
}

// AssistResult is a successful backend reply: human wording plus the structured payload
type AssistResult struct {
	Wording string         `json:"wording"`
	Result  *AssistPayload `json:"result" validate:"required"`
}

// AssistPayload is the structured part of a reply used for the results panel
type AssistPayload struct {
	Patient PatientSummary    `json:"patient"`
	Intents string            `json:"intents"`
	Answers []Answer          `json:"answers"`
	Actions []json.RawMessage `json:"actions"`
}

// PatientSummary echoes the patient record the backend answered about
type PatientSummary struct {
	Name      string `json:"name,omitempty"`
	DOB       string `json:"dob,omitempty"`
	Insurance string `json:"insurance,omitempty"`
}
