package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/logger"
	"github.com/mkrull/vmark/internal/store/memory"
)

func TestSweepMarksReachability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := memory.NewStore()
	ctx := context.Background()
	_ = store.Save(ctx, &domain.Bookmark{ID: 1, URL: srv.URL + "/ok"})
	_ = store.Save(ctx, &domain.Bookmark{ID: 2, URL: srv.URL + "/missing"})
	_ = store.Save(ctx, &domain.Bookmark{ID: 3, URL: "http://127.0.0.1:1/unroutable"})

	checker := NewReachabilityChecker(store, logger.NewNop(), time.Hour, 2*time.Second)
	if err := checker.Sweep(ctx); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		id        int64
		reachable bool
	}{
		{1, true},
		{2, false},
		{3, false},
	}
	for _, tt := range tests {
		b, err := store.GetByID(ctx, tt.id)
		if err != nil {
			t.Fatal(err)
		}
		if b.Reachable == nil {
			t.Errorf("#%d: reachable still unknown", tt.id)
			continue
		}
		if *b.Reachable != tt.reachable {
			t.Errorf("#%d: reachable = %v, want %v", tt.id, *b.Reachable, tt.reachable)
		}
	}
}
