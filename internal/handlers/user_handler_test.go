package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

type fakeUserStore struct {
	user *models.User
	err  error

	deletedID uuid.UUID
}

func (f *fakeUserStore) CreateUser(u *models.User) error { return f.err }

func (f *fakeUserStore) GetUserByID(id uuid.UUID) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUserStore) GetUserByGoogleID(id string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUserStore) DeleteUser(id uuid.UUID) error {
	f.deletedID = id
	return f.err
}

func testUserHandler(fake *fakeUserStore) *UserHandler {
	return NewUserHandler(fake, sessions.NewCookieStore([]byte("test-key")), testLogger())
}

func TestHandlerGetMe(t *testing.T) {
	account := &models.User{ID: uuid.New(), Name: "tester", Email: "t@example.com"}
	handler := testUserHandler(&fakeUserStore{user: account})

	w := httptest.NewRecorder()
	handler.HandlerGetMe(w, authedRequest(http.MethodGet, "/api/v1/users/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data models.User `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if envelope.Data.Email != account.Email {
		t.Errorf("expected email %q, got %q", account.Email, envelope.Data.Email)
	}
}

func TestHandlerGetMeUnauthenticated(t *testing.T) {
	handler := testUserHandler(&fakeUserStore{})

	w := httptest.NewRecorder()
	handler.HandlerGetMe(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestHandlerDeleteAccount(t *testing.T) {
	fake := &fakeUserStore{}
	handler := testUserHandler(fake)

	r := authedRequest(http.MethodDelete, "/api/v1/users/me", nil)
	user, _ := middlewares.GetUserFromContext(r)

	w := httptest.NewRecorder()
	handler.HandlerDeleteAccount(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if fake.deletedID != user.ID {
		t.Errorf("store deleted %s, want %s", fake.deletedID, user.ID)
	}
}

func TestHandlerDeleteAccountMissing(t *testing.T) {
	handler := testUserHandler(&fakeUserStore{err: store.ErrNotFound})

	w := httptest.NewRecorder()
	handler.HandlerDeleteAccount(w, authedRequest(http.MethodDelete, "/api/v1/users/me", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
