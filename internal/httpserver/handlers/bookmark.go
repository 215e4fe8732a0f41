package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkrull/vmark/internal/httpserver/deps"
	"github.com/mkrull/vmark/internal/logger"
	"github.com/mkrull/vmark/internal/vfs"
)

// Bookmark returns a single bookmark by id.
func Bookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id < 0 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "invalid bookmark id"})
			return
		}

		b, err := d.Store.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, vfs.ErrTargetNotFound) {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(errorResponse{Error: "bookmark not found"})
				return
			}
			d.Logger.Error("bookmark lookup failed",
				logger.Int64("id", id),
				logger.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "internal error"})
			return
		}

		_ = json.NewEncoder(w).Encode(b)
	}
}
