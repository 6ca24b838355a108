package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
	})

	// routes behind per-request basic auth
	router.Group(func(r chi.Router) {
		r.Use(h.basicAuth)

		r.Post("/api/user/login", h.login)
		r.Delete("/api/user", h.deleteUser)

		r.Route("/api/passwords", func(r chi.Router) {
			r.Get("/", h.listPasswords)
			r.Post("/", h.savePassword)
			r.Put("/{service}", h.updatePassword)
			r.Delete("/{service}", h.deletePassword)
		})
	})

	return router
}
