package handlers

import (
	"log"
	"net/http"

	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/gorilla/sessions"
)

type UserHandler struct {
	UserStore    store.UserStore
	SessionStore *sessions.CookieStore
	Logger       *log.Logger
}

func NewUserHandler(userStore store.UserStore, sessionStore *sessions.CookieStore, logger *log.Logger) *UserHandler {
	return &UserHandler{
		UserStore:    userStore,
		SessionStore: sessionStore,
		Logger:       logger,
	}
}

// HandlerGetMe returns the caller's account row. The session only carries id
// and email, so the profile page reads the rest from the database.
func (uh *UserHandler) HandlerGetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		uh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	account, err := uh.UserStore.GetUserByID(user.ID)
	if err != nil {
		writeStoreError(uh.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": account})
}

// HandlerDeleteAccount removes the caller's account. The channel, videos,
// comments, reactions and subscriptions go with it via the FK cascades, and
// the session is expired so the cookie cannot linger.
func (uh *UserHandler) HandlerDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		uh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	if err := uh.UserStore.DeleteUser(user.ID); err != nil {
		writeStoreError(uh.Logger, w, err)
		return
	}

	session, _ := uh.SessionStore.Get(r, middlewares.SessionName)
	for key := range session.Values {
		delete(session.Values, key)
	}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		uh.Logger.Println("Error clearing session", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Success"})
}
