package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type Oauth interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
}

type GoogleOauth struct {
	Logger    *log.Logger
	Config    *oauth2.Config
	Store     *sessions.CookieStore
	UserStore store.UserStore
}

func NewGoogleOauth(logger *log.Logger, sessionStore *sessions.CookieStore, userStore store.UserStore) (*GoogleOauth, error) {

	return &GoogleOauth{
		Logger: logger,
		Config: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  fmt.Sprintf("%s/auth/google/callback", os.Getenv("BACKEND_URL")),
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.profile", "https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
		Store:     sessionStore,
		UserStore: userStore,
	}, nil
}

func (g *GoogleOauth) Login(w http.ResponseWriter, r *http.Request) {
	url := g.Config.AuthCodeURL("random-state-string", oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (g *GoogleOauth) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := g.Store.Get(r, middlewares.SessionName)

	for key := range session.Values {
		delete(session.Values, key)
	}

	session.Options.MaxAge = -1

	err := session.Save(r, w)
	if err != nil {
		g.Logger.Println("Error clearing session", err)
	}

	redirectURL := os.Getenv("FRONTEND_URL")
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func (g *GoogleOauth) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	token, err := g.Config.Exchange(context.Background(), code)
	if err != nil {
		g.Logger.Println("Error exchanging user token", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	client := g.Config.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		g.Logger.Println("Error getting user info", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	defer resp.Body.Close()

	var userInfo struct {
		GoogleID string `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Image    string `json:"picture"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil {
		g.Logger.Println("Error decoding user info", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	var userID string
	user, err := g.UserStore.GetUserByGoogleID(userInfo.GoogleID)

	switch {
	case errors.Is(err, store.ErrNotFound):
		newUser := models.User{
			GoogleID: userInfo.GoogleID,
			Name:     userInfo.Name,
			Email:    userInfo.Email,
			ImageSrc: userInfo.Image,
			Role:     "USER",
		}

		err = g.UserStore.CreateUser(&newUser)
		if err != nil {
			g.Logger.Println("Error creating user", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
			return
		}

		userID = newUser.ID.String()
	case err != nil:
		g.Logger.Println("Error getting user by google id", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	default:
		userID = user.ID.String()
	}

	session, _ := g.Store.Get(r, middlewares.SessionName)
	session.Values["user_id"] = userID
	session.Values["user_email"] = userInfo.Email
	session.Values["user_image"] = userInfo.Image
	session.Values["user_name"] = userInfo.Name

	err = session.Save(r, w)
	if err != nil {
		g.Logger.Println("Error saving session", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	redirectURL := os.Getenv("FRONTEND_URL") + "/dashboard"
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func (g *GoogleOauth) AuthUser(w http.ResponseWriter, r *http.Request) {
	session, err := g.Store.Get(r, middlewares.SessionName)
	if err != nil {
		g.Logger.Println("Error getting session", err)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authenticated"})
		return
	}

	userEmail, emailOk := session.Values["user_email"].(string)
	userIDStr, idOk := session.Values["user_id"].(string)
	userName, nameOk := session.Values["user_name"].(string)
	userImage, imageOk := session.Values["user_image"].(string)

	if !emailOk || !idOk || !nameOk || !imageOk || userEmail == "" || userIDStr == "" {
		g.Logger.Println("Invalid or missing user data in session")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authenticated"})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		g.Logger.Println("Invalid user ID format in session:", err)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authenticated"})
		return
	}

	userInfo := map[string]interface{}{
		"id":    userID,
		"email": userEmail,
		"name":  userName,
		"image": userImage,
		"role":  "USER",
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": userInfo})

}
