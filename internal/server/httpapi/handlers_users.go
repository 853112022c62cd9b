package httpapi

import (
	"net/http"
	"strconv"

	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type userResponse struct {
	ID       int64       `json:"id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	RoleRank uint8       `json:"role_rank"`
}

func toUserResponse(a *models.Account) userResponse {
	return userResponse{
		ID:       a.ID,
		Email:    a.Email,
		Role:     a.Role,
		RoleRank: a.Role.Rank(),
	}
}

func (s *HTTPServer) handleMeGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(accountFrom(r.Context())))
}

type mePatchRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// handleMePatch updates the caller's email and/or password; both changes
// land in one transaction.
func (s *HTTPServer) handleMePatch(w http.ResponseWriter, r *http.Request) {
	var req mePatchRequest
	if !decodeBody(w, r, "USERS", &req) {
		return
	}

	account := accountFrom(r.Context())
	if err := s.accounts.UpdateSelf(r.Context(), account.ID, req.Email, req.Password); err != nil {
		s.logError(r, "self update failed", err)
		writeServiceError(w, "USERS", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleUserList(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.List(r.Context())
	if err != nil {
		s.logError(r, "user list failed", err)
		writeServiceError(w, "USERS", err)
		return
	}

	result := make([]userResponse, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, toUserResponse(a))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleUserGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "USERS")
	if !ok {
		return
	}

	account, err := s.accounts.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "USERS", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(account))
}

// handleUserDelete removes an account; the service refuses targets not
// ranked strictly below the requester.
func (s *HTTPServer) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "USERS")
	if !ok {
		return
	}

	requester := accountFrom(r.Context())
	if err := s.accounts.Delete(r.Context(), id, requester.Role); err != nil {
		writeServiceError(w, "USERS", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} route parameter, rejecting non-numeric values
// with a 422.
func pathID(w http.ResponseWriter, r *http.Request, prefix string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, prefix+"_INVALID_ID", "invalid id")
		return 0, false
	}
	return id, true
}
