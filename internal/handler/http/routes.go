package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, withGZip)

	// public routes
	router.Group(func(r chi.Router) {
		r.Get("/forms/{formId}", h.getForm)
		r.Post("/forms/submit", h.submitForm)

		r.Get("/api/version/", h.getServerVersion)
		r.Get("/healthz", h.healthz)
		r.Method("GET", "/metrics", h.metrics.Handler())
	})

	// owner routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/forms/create", h.createForm)
		r.Get("/forms/list", h.listForms)
		r.Get("/forms/responses/{formId}", h.getResponses)
		r.Delete("/forms/delete/{formId}", h.deleteForm)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
