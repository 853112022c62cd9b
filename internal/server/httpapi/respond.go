package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/donorbase/donorbase/internal/common"
)

// ErrorResponse is the uniform error payload: a stable machine-readable
// code plus a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error onto a status and a prefixed code
// such as SIGNIN_ACCOUNT_NOT_FOUND. Unrecognized errors become a 500 with
// the generic message so internals never leak to the client.
func writeServiceError(w http.ResponseWriter, prefix string, err error) {
	status, suffix := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = common.ErrInternal.Error()
	}
	writeError(w, status, prefix+"_"+suffix, message)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrAccountNotFound):
		return http.StatusNotFound, "ACCOUNT_NOT_FOUND"
	case errors.Is(err, common.ErrIncorrectPassword):
		return http.StatusUnauthorized, "INCORRECT_PASSWORD"
	case errors.Is(err, common.ErrInviteNotFound):
		return http.StatusNotFound, "INVITE_NOT_FOUND"
	case errors.Is(err, common.ErrExpiredInvite):
		return http.StatusGone, "EXPIRED_INVITE"
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, common.ErrNoCookies):
		return http.StatusUnauthorized, "NO_COOKIES"
	case errors.Is(err, common.ErrNoSessionToken):
		return http.StatusUnauthorized, "NO_SESSION_TOKEN"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN"
	case errors.Is(err, common.ErrInsufficientPermissions):
		return http.StatusForbidden, "INSUFFICIENT_PERMISSIONS"
	case errors.Is(err, common.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, "INVALID_EMAIL"
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// decodeBody unmarshals the request body; a malformed payload yields a 422
// with the operation's prefix.
func decodeBody(w http.ResponseWriter, r *http.Request, prefix string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, prefix+"_INVALID_BODY", "invalid request body")
		return false
	}
	return true
}
