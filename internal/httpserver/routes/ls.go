package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkrull/vmark/internal/httpserver/deps"
	"github.com/mkrull/vmark/internal/httpserver/handlers"
)

func init() { Register(registerLs) }

func registerLs(r chi.Router, d deps.Deps) {
	r.Get("/api/ls", handlers.Ls(d))
}
