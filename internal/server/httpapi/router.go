package httpapi

import (
	"context"
	"net/http"

	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Handler builds the route tree. Auth endpoints sit under /users/auth; the
// remaining routes require a valid session and a minimum role.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestLogger)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		s.logger.Warn(context.Background(), "no allowed origins configured, allowing all origins for CORS")
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Origin", "User-Agent"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignup)
			r.Post("/signin", s.handleSignin)
			r.Delete("/signout", s.handleSignout)

			r.Group(func(r chi.Router) {
				r.Use(s.authenticate)
				r.Get("/validate", s.handleValidate)
				r.Post("/invite", s.handleInvite)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/me", s.handleMeGet)
			r.Patch("/me", s.handleMePatch)

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(models.RoleAdmin))
				r.Get("/", s.handleUserList)
				r.Get("/{id}", s.handleUserGet)
				r.Delete("/{id}", s.handleUserDelete)
			})
		})
	})

	r.Route("/donations", func(r chi.Router) {
		r.Use(s.authenticate, s.requireRole(models.RoleEditor))
		r.Get("/", s.handleDonationList)
		r.Post("/", s.handleDonationCreate)
		r.Get("/{id}", s.handleDonationGet)
		r.Put("/{id}", s.handleDonationUpdate)
		r.Delete("/{id}", s.handleDonationDelete)
	})

	r.Route("/supporters", func(r chi.Router) {
		r.Use(s.authenticate, s.requireRole(models.RoleEditor))
		r.Get("/", s.handleSupporterList)
		r.Post("/", s.handleSupporterCreate)
		r.Get("/{id}", s.handleSupporterGet)
		r.Put("/{id}", s.handleSupporterUpdate)
		r.Delete("/{id}", s.handleSupporterDelete)
	})

	return r
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
