package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avlok/vidfeed_server/internal/store"
)

func TestWriteStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"not owner", store.ErrNotOwner, http.StatusForbidden},
		{"invalid parent", store.ErrInvalidParent, http.StatusBadRequest},
		{"channel exists", store.ErrChannelExists, http.StatusConflict},
		{"no channel", store.ErrNoChannel, http.StatusConflict},
		{"self subscription", store.ErrSelfSubscription, http.StatusConflict},
		{"already subscribed", store.ErrAlreadySubscribed, http.StatusConflict},
		{"not subscribed", store.ErrNotSubscribed, http.StatusConflict},
		{"nsfw not allowed", store.ErrNSFWNotAllowed, http.StatusConflict},
		{"unknown", errors.New("db on fire"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeStoreError(testLogger(), w, tc.err)

			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestWriteStoreErrorWrapped(t *testing.T) {
	w := httptest.NewRecorder()
	writeStoreError(testLogger(), w, errors.Join(errors.New("context"), store.ErrNotFound))

	if w.Code != http.StatusNotFound {
		t.Errorf("wrapped sentinel must still map, got %d", w.Code)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=abc", 1},
	}

	for _, tc := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		if got := parsePage(r); got != tc.want {
			t.Errorf("parsePage(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
