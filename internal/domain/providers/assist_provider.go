package providers

import (
	"context"

	"github.com/zatekoja/careassist/internal/domain/entities"
)

// AssistProvider defines the interface to the backend assistant
type AssistProvider interface {
	// Send forwards one operator message for the given patient and returns the structured reply.
	// Failures are *errors.AppError values of type EMPTY_INPUT, NETWORK or PROTOCOL.
	Send(ctx context.Context, message, patientID string) (*entities.AssistResult, error)
}
