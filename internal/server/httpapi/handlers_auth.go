package httpapi

import (
	"net/http"

	"github.com/donorbase/donorbase/internal/server/models"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Invite   string `json:"invite"`
}

// handleSignup consumes an invite and creates the account. No session is
// issued; the client signs in afterwards.
func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, "SIGNUP", &req) {
		return
	}

	if _, err := s.signup.SignUp(r.Context(), req.Email, req.Password, req.Invite); err != nil {
		s.logError(r, "signup failed", err)
		writeServiceError(w, "SIGNUP", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *HTTPServer) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !decodeBody(w, r, "SIGNIN", &req) {
		return
	}

	token, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logError(r, "signin failed", err)
		writeServiceError(w, "SIGNIN", err)
		return
	}

	s.setSessionCookie(w, token, s.cfg.SessionTTL)
	w.WriteHeader(http.StatusOK)
}

// handleSignout deletes the session row and clears the cookie. Signing out
// an unknown token still succeeds.
func (s *HTTPServer) handleSignout(w http.ResponseWriter, r *http.Request) {
	token, err := sessionToken(r)
	if err != nil {
		writeServiceError(w, "VALIDATE", err)
		return
	}

	if err := s.auth.SignOut(r.Context(), token); err != nil {
		s.logError(r, "signout failed", err)
		writeServiceError(w, "VALIDATE", err)
		return
	}

	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

// handleValidate runs behind authenticate; reaching it means the session is
// good.
func (s *HTTPServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type inviteRequest struct {
	Role models.Role `json:"role"`
}

type inviteResponse struct {
	Code string `json:"code"`
}

func (s *HTTPServer) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if !decodeBody(w, r, "INVITE", &req) {
		return
	}

	requester := accountFrom(r.Context())

	invite, err := s.invites.Issue(r.Context(), requester.Role, req.Role)
	if err != nil {
		s.logError(r, "invite failed", err)
		writeServiceError(w, "INVITE", err)
		return
	}

	writeJSON(w, http.StatusCreated, inviteResponse{Code: invite.Code})
}

func (s *HTTPServer) logError(r *http.Request, msg string, err error) {
	s.logger.Error(r.Context(), msg, "error", err.Error())
}
