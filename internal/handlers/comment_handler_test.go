package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/google/uuid"
)

type fakeCommentStore struct {
	comment *models.Comment
	err     error

	gotVideoID  uuid.UUID
	gotParentID *uuid.UUID
	gotContent  string
}

func (f *fakeCommentStore) CreateComment(videoID uuid.UUID, authorID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	f.gotVideoID = videoID
	f.gotParentID = parentID
	f.gotContent = content
	return f.comment, f.err
}

func (f *fakeCommentStore) UpdateComment(actorID uuid.UUID, commentID uuid.UUID, content string) (*models.Comment, error) {
	return f.comment, f.err
}

func (f *fakeCommentStore) DeleteComment(actorID uuid.UUID, commentID uuid.UUID) error {
	return f.err
}

func (f *fakeCommentStore) GetCommentTree(videoID uuid.UUID) ([]store.CommentThread, error) {
	return nil, f.err
}

func TestHandlerCreateComment(t *testing.T) {
	videoID := uuid.New()
	fake := &fakeCommentStore{comment: &models.Comment{Id: uuid.New(), Video_ID: videoID, Content: "nice"}}
	handler := NewCommentHandler(fake, testLogger())

	body, _ := json.Marshal(map[string]interface{}{
		"video_id": videoID,
		"content":  "nice",
	})

	w := httptest.NewRecorder()
	handler.HandlerCreateComment(w, authedRequest(http.MethodPost, "/api/v1/comments", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if fake.gotVideoID != videoID {
		t.Errorf("store called with video %s, want %s", fake.gotVideoID, videoID)
	}
	if fake.gotParentID != nil {
		t.Errorf("expected top-level comment, got parent %v", fake.gotParentID)
	}
}

func TestHandlerCreateCommentValidation(t *testing.T) {
	handler := NewCommentHandler(&fakeCommentStore{}, testLogger())

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing video", map[string]interface{}{"content": "hi"}},
		{"empty content", map[string]interface{}{"video_id": uuid.New(), "content": "   "}},
		{"content too long", map[string]interface{}{"video_id": uuid.New(), "content": strings.Repeat("a", maxCommentLength+1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)

			w := httptest.NewRecorder()
			handler.HandlerCreateComment(w, authedRequest(http.MethodPost, "/api/v1/comments", body))

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandlerCreateCommentInvalidParent(t *testing.T) {
	fake := &fakeCommentStore{err: store.ErrInvalidParent}
	handler := NewCommentHandler(fake, testLogger())

	parentID := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{
		"video_id":  uuid.New(),
		"content":   "replying to a reply",
		"parent_id": parentID,
	})

	w := httptest.NewRecorder()
	handler.HandlerCreateComment(w, authedRequest(http.MethodPost, "/api/v1/comments", body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if fake.gotParentID == nil || *fake.gotParentID != parentID {
		t.Errorf("parent id not passed through")
	}
}
