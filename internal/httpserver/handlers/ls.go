package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/httpserver/deps"
	"github.com/mkrull/vmark/internal/logger"
	"github.com/mkrull/vmark/internal/vfs"
)

type lsResponse struct {
	Path       string             `json:"path"`
	Kind       string             `json:"kind"`
	Collection string             `json:"collection,omitempty"`
	TagPrefix  string             `json:"tag_prefix,omitempty"`
	Domain     string             `json:"domain,omitempty"`
	Period     string             `json:"period,omitempty"`
	Activity   string             `json:"activity,omitempty"`
	Bookmark   *domain.Bookmark   `json:"bookmark,omitempty"`
	Bookmarks  []*domain.Bookmark `json:"bookmarks,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Ls resolves a virtual path and returns the matching view as JSON.
// Paths are absolute; relative forms are normalized against "/".
func Ls(d deps.Deps) http.HandlerFunc {
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	classifier := &vfs.Classifier{
		Repo:            d.Store,
		Now:             now,
		DefaultActivity: d.DefaultActivity,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		path := vfs.Normalize(r.URL.Query().Get("path"), "/")
		c, err := classifier.Classify(r.Context(), path)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, vfs.ErrInvalidPeriod) || errors.Is(err, vfs.ErrInvalidActivity) {
				status = http.StatusBadRequest
			} else {
				d.Logger.Error("ls failed",
					logger.String("path", path),
					logger.Error(err))
			}
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
			return
		}

		if c.Kind == vfs.KindNotFound {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "path not found"})
			return
		}

		_ = json.NewEncoder(w).Encode(lsResponse{
			Path:       c.Path,
			Kind:       c.Kind.String(),
			Collection: c.Collection,
			TagPrefix:  c.TagPrefix,
			Domain:     c.Domain,
			Period:     string(c.Period),
			Activity:   string(c.Activity),
			Bookmark:   c.Bookmark,
			Bookmarks:  c.Bookmarks,
		})
	}
}
