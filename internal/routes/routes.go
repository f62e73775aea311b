package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tarefista/tarefista-backend/internal/handlers"
)

// Handlers bundles the resource handlers wired up in main.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Tasks   *handlers.TasksHandler
	Goals   *handlers.GoalsHandler
	Phrases *handlers.PhrasesHandler
}

// Setup registers the API route table. Path casing matches the original
// client contract.
func Setup(r chi.Router, h Handlers) {
	r.Route("/api/Auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)
		r.Get("/userId", h.Auth.GetUserID)
		r.Get("/tempUserId", h.Auth.GetTempUserID)
	})

	r.Route("/api/Tasks", func(r chi.Router) {
		r.Post("/", h.Tasks.Create)
		r.Get("/", h.Tasks.List)
		r.Post("/sync", h.Tasks.Sync)
		r.Put("/{id}", h.Tasks.Update)
		r.Delete("/{id}", h.Tasks.Delete)
	})

	r.Route("/api/Goals", func(r chi.Router) {
		r.Post("/", h.Goals.Create)
		r.Get("/", h.Goals.List)
		r.Delete("/{id}", h.Goals.Delete)
	})

	r.Get("/api/Phrases", h.Phrases.Get)
}
