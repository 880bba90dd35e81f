package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zatekoja/careassist/internal/application/services"
	"github.com/zatekoja/careassist/internal/application/views"
	"github.com/zatekoja/careassist/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careassist/pkg/errors"
)

// SessionHandler exposes operator sessions over HTTP
type SessionHandler struct {
	registry *services.SessionRegistry
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *services.SessionRegistry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

type createSessionResponse struct {
	SessionID string            `json:"session_id"`
	View      views.SessionView `json:"view"`
}

type messageRequest struct {
	Message string `json:"message"`
}

type patientRequest struct {
	PatientID string `json:"patient_id"`
}

type filterRequest struct {
	Text *string `json:"text"`
	Type *string `json:"type"`
}

// ListQuickPrompts handles GET /api/prompts
func (h *SessionHandler) ListQuickPrompts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"prompts": services.QuickPrompts(),
	})
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.registry.Create(r.Context())

	respondWithJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: session.ID(),
		View:      views.NewSessionView(session.Snapshot()),
	})
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, views.NewSessionView(session.Snapshot()))
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendMessage handles POST /api/sessions/{id}/messages.
// A failed exchange still returns the view, which carries the error line.
// The exchange outlives the caller's connection.
func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload messageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	h.respondAfterExchange(w, r, session, session.Send(exchangeContext(r), payload.Message))
}

// UseQuickPrompt handles POST /api/sessions/{id}/prompts/{index}
func (h *SessionHandler) UseQuickPrompt(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "prompt index must be a number")
		return
	}

	h.respondAfterExchange(w, r, session, session.UseQuickPrompt(exchangeContext(r), index))
}

// SetPatient handles PUT /api/sessions/{id}/patient
func (h *SessionHandler) SetPatient(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload patientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	session.SetPatientID(payload.PatientID)
	respondWithJSON(w, http.StatusOK, views.NewSessionView(session.Snapshot()))
}

// SetFilter handles PUT /api/sessions/{id}/filter.
// Omitted fields keep their current value.
func (h *SessionHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload filterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.Type != nil {
		typ, err := services.ParseAppointmentTypeFilter(*payload.Type)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		session.SetFilterType(typ)
	}
	if payload.Text != nil {
		session.SetFilterText(*payload.Text)
	}

	respondWithJSON(w, http.StatusOK, views.NewSessionView(session.Snapshot()))
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	session, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return nil, false
	}
	return session, true
}

// exchangeContext keeps the request's values, trace and logger included,
// without its cancellation
func exchangeContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *SessionHandler) respondAfterExchange(w http.ResponseWriter, r *http.Request, session *services.Session, err error) {
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, views.NewSessionView(session.Snapshot()))
	case apperrors.IsType(err, apperrors.ErrorTypeNetwork), apperrors.IsType(err, apperrors.ErrorTypeProtocol):
		respondWithJSON(w, http.StatusBadGateway, views.NewSessionView(session.Snapshot()))
	default:
		observability.LoggerFromContext(r.Context()).Debug().Err(err).Str("session_id", session.ID()).Msg("exchange rejected")
		respondWithAppError(w, err)
	}
}
