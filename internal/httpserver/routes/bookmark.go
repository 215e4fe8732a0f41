package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkrull/vmark/internal/httpserver/deps"
	"github.com/mkrull/vmark/internal/httpserver/handlers"
)

func init() { Register(registerBookmark) }

func registerBookmark(r chi.Router, d deps.Deps) {
	r.Get("/api/bookmarks/{id}", handlers.Bookmark(d))
}
