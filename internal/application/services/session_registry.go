package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/zatekoja/careassist/internal/domain/providers"
	"github.com/zatekoja/careassist/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careassist/pkg/errors"
)

// SessionRegistry keeps the live sessions of a gateway process in memory.
// Nothing is persisted; a session lives until it is deleted or the process exits.
type SessionRegistry struct {
	provider         providers.AssistProvider
	defaultPatientID string

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry(provider providers.AssistProvider, defaultPatientID string) *SessionRegistry {
	return &SessionRegistry{
		provider:         provider,
		defaultPatientID: defaultPatientID,
		sessions:         make(map[string]*Session),
	}
}

// Create starts a new session for the default patient
func (r *SessionRegistry) Create(ctx context.Context) *Session {
	session := NewSession(uuid.New().String(), r.provider, r.defaultPatientID)

	r.mu.Lock()
	r.sessions[session.ID()] = session
	r.mu.Unlock()

	observability.LoggerFromContext(ctx).Debug().Str("session_id", session.ID()).Msg("session created")
	return session
}

// Get returns the session with id
func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("session not found")
	}
	return session, nil
}

// Delete drops the session with id
func (r *SessionRegistry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return apperrors.NewNotFoundError("session not found")
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
