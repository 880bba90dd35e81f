package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/zatekoja/careassist/internal/domain/entities"
	"github.com/zatekoja/careassist/internal/domain/providers"
	"github.com/zatekoja/careassist/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careassist/pkg/errors"
)

// Session is one operator conversation: the log, the in-flight guard, the
// last error and the results filters. At most one assist request is in
// flight per session.
type Session struct {
	id       string
	provider providers.AssistProvider

	mu         sync.Mutex
	log        *ConversationLog
	projector  *ResultProjector
	busy       bool
	lastError  string
	patientID  string
	draft      string
	filterText string
	filterType AppointmentTypeFilter
}

// SessionSnapshot is a point-in-time copy of a session's state
type SessionSnapshot struct {
	ID         string                    `json:"id"`
	Turns      []entities.Turn           `json:"turns"`
	Busy       bool                      `json:"busy"`
	Error      string                    `json:"error,omitempty"`
	PatientID  string                    `json:"patient_id"`
	Draft      string                    `json:"draft"`
	FilterText string                    `json:"filter_text"`
	FilterType AppointmentTypeFilter     `json:"filter_type"`
	Projection Projection                `json:"projection"`
	Providers  []entities.ProviderAnswer `json:"providers"`
}

// NewSession creates a session for patientID backed by provider
func NewSession(id string, provider providers.AssistProvider, patientID string) *Session {
	return &Session{
		id:         id,
		provider:   provider,
		log:        NewConversationLog(),
		projector:  NewResultProjector(),
		patientID:  patientID,
		filterType: AppointmentTypeAll,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Submit sends the current draft. A blank draft is a no-op. While another
// request is in flight it returns a CONFLICT error and changes nothing.
func (s *Session) Submit(ctx context.Context) error {
	return s.submit(ctx, nil)
}

// Send replaces the draft with text and submits it
func (s *Session) Send(ctx context.Context, text string) error {
	return s.submit(ctx, &text)
}

// UseQuickPrompt populates the draft with quick prompt i and submits it
func (s *Session) UseQuickPrompt(ctx context.Context, i int) error {
	prompt, ok := QuickPrompt(i)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("quick prompt %d", i))
	}
	return s.Send(ctx, prompt)
}

func (s *Session) submit(ctx context.Context, override *string) error {
	text, patientID, err := s.begin(override)
	if err != nil || text == "" {
		return err
	}

	logger := observability.LoggerFromContext(ctx)
	logger.Debug().Str("session_id", s.id).Str("patient_id", patientID).Msg("assist exchange started")

	var result *entities.AssistResult
	defer func() {
		s.settle(result, err)
	}()

	result, err = s.provider.Send(ctx, text, patientID)
	if err == nil && result == nil {
		err = apperrors.NewProtocolError("", nil)
	}
	if err != nil {
		logger.Warn().Err(err).Str("session_id", s.id).Msg("assist exchange failed")
		return err
	}

	logger.Info().Str("session_id", s.id).Int("answers", answerCount(result)).Msg("assist exchange settled")
	return nil
}

// begin validates the outgoing text and records the nurse turn
func (s *Session) begin(override *string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draft
	if override != nil {
		draft = *override
	}
	text := strings.TrimSpace(draft)
	if text == "" {
		if override != nil && !s.busy {
			s.draft = draft
		}
		return "", "", nil
	}
	if s.busy {
		return "", "", apperrors.NewConflictError("a request is already in flight")
	}

	s.draft = draft
	s.lastError = ""
	s.log.Append(entities.NewNurseTurn(text))
	s.busy = true
	return text, s.patientID, nil
}

// settle runs once per request whether it succeeded, failed or panicked
func (s *Session) settle(result *entities.AssistResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false
	switch {
	case err != nil:
		s.lastError = apperrors.UserMessage(err)
	case result != nil:
		s.log.Append(entities.NewAssistantTurn(result))
		s.draft = ""
	default:
		s.lastError = apperrors.UserMessage(apperrors.NewProtocolError("", nil))
	}
}

// SetDraft replaces the pending message
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// SetPatientID changes the patient id sent with subsequent requests.
// The value is sent verbatim.
func (s *Session) SetPatientID(patientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patientID = patientID
}

// SetFilterText changes the provider text filter
func (s *Session) SetFilterText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterText = text
}

// SetFilterType changes the provider appointment type filter
func (s *Session) SetFilterType(typ AppointmentTypeFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterType = typ
}

// Busy reports whether a request is in flight
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Snapshot copies the session state together with the derived results
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.log.Turns()
	projection := s.projector.Project(turns)
	projection.Providers = slices.Clone(projection.Providers)

	return SessionSnapshot{
		ID:         s.id,
		Turns:      turns,
		Busy:       s.busy,
		Error:      s.lastError,
		PatientID:  s.patientID,
		Draft:      s.draft,
		FilterText: s.filterText,
		FilterType: s.filterType,
		Projection: projection,
		Providers:  FilterProviders(projection.Providers, s.filterText, s.filterType),
	}
}

func answerCount(result *entities.AssistResult) int {
	if result == nil || result.Result == nil {
		return 0
	}
	return len(result.Result.Answers)
}
