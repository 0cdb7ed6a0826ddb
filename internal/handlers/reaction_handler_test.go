package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/google/uuid"
)

type fakeReactionStore struct {
	state *store.ReactionState
	err   error

	gotActorID uuid.UUID
	gotKind    models.TargetKind
	gotType    models.ReactionType
}

func (f *fakeReactionStore) React(actorID uuid.UUID, targetID uuid.UUID, kind models.TargetKind, reactionType models.ReactionType) (*store.ReactionState, error) {
	f.gotActorID = actorID
	f.gotKind = kind
	f.gotType = reactionType
	return f.state, f.err
}

func (f *fakeReactionStore) GetVideoReaction(actorID uuid.UUID, videoID uuid.UUID) (*models.ReactionType, error) {
	return nil, nil
}

func testLogger() *log.Logger {
	return log.New(bytes.NewBuffer(nil), "", 0)
}

func authedRequest(method, target string, body []byte) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	user := &models.User{ID: uuid.New(), Name: "tester"}
	return r.WithContext(context.WithValue(r.Context(), middlewares.UserContextKey, user))
}

func TestHandlerReact(t *testing.T) {
	like := models.ReactionLike
	fake := &fakeReactionStore{
		state: &store.ReactionState{Reaction: &like, LikesCount: 5, DislikesCount: 1},
	}
	handler := NewReactionHandler(fake, testLogger())

	body, _ := json.Marshal(map[string]interface{}{
		"target_id":   uuid.New(),
		"target_kind": "video",
		"type":        "like",
	})

	w := httptest.NewRecorder()
	handler.HandlerReact(w, authedRequest(http.MethodPost, "/api/v1/reactions", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if fake.gotKind != models.TargetVideo || fake.gotType != models.ReactionLike {
		t.Errorf("store called with kind=%s type=%s", fake.gotKind, fake.gotType)
	}

	var envelope struct {
		Data store.ReactionState `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if envelope.Data.LikesCount != 5 {
		t.Errorf("expected likes_count 5, got %d", envelope.Data.LikesCount)
	}
}

func TestHandlerReactUnauthenticated(t *testing.T) {
	handler := NewReactionHandler(&fakeReactionStore{}, testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reactions", bytes.NewReader(nil))
	handler.HandlerReact(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestHandlerReactValidation(t *testing.T) {
	handler := NewReactionHandler(&fakeReactionStore{}, testLogger())

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing target", map[string]interface{}{"target_kind": "video", "type": "like"}},
		{"bad kind", map[string]interface{}{"target_id": uuid.New(), "target_kind": "playlist", "type": "like"}},
		{"bad type", map[string]interface{}{"target_id": uuid.New(), "target_kind": "video", "type": "love"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)

			w := httptest.NewRecorder()
			handler.HandlerReact(w, authedRequest(http.MethodPost, "/api/v1/reactions", body))

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandlerReactMissingTarget(t *testing.T) {
	fake := &fakeReactionStore{err: store.ErrNotFound}
	handler := NewReactionHandler(fake, testLogger())

	body, _ := json.Marshal(map[string]interface{}{
		"target_id":   uuid.New(),
		"target_kind": "comment",
		"type":        "dislike",
	})

	w := httptest.NewRecorder()
	handler.HandlerReact(w, authedRequest(http.MethodPost, "/api/v1/reactions", body))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
