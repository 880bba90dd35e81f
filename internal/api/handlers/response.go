package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/zatekoja/careassist/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to its HTTP status
func respondWithAppError(w http.ResponseWriter, err error) {
	respondWithError(w, statusFor(err), apperrors.UserMessage(err))
}

func statusFor(err error) int {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeEmptyInput:
		return http.StatusBadRequest
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeNetwork, apperrors.ErrorTypeProtocol:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
