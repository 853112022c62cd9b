package httpapi

import (
	"net/http"
	"time"

	"github.com/donorbase/donorbase/internal/common"
)

// setSessionCookie installs the session cookie. Outside development the
// cookie additionally carries Secure and SameSite=None so a cross-origin
// frontend can send it.
func (s *HTTPServer) setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		MaxAge:   int(ttl.Seconds()),
		Path:     "/",
		HttpOnly: true,
	}
	if !s.cfg.IsDevelopment() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}

// clearSessionCookie expires the cookie with Max-Age=0. A negative MaxAge
// is what net/http serializes as Max-Age=0.
func (s *HTTPServer) clearSessionCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	}
	if !s.cfg.IsDevelopment() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}
