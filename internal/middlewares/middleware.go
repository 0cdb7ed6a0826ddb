package middlewares

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

type contextKey string

const UserContextKey contextKey = "user"

const SessionName = "vidfeed_session"

type MiddlewareHandler struct {
	Logger       *log.Logger
	SessionStore *sessions.CookieStore
}

func NewMiddlewareHandler(logger *log.Logger, store *sessions.CookieStore) *MiddlewareHandler {
	return &MiddlewareHandler{
		Logger:       logger,
		SessionStore: store,
	}
}

func (mh *MiddlewareHandler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		user, ok := mh.userFromSession(r)
		if !ok {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches the user when a valid session exists and lets
// the request through either way. Public pages use it to personalize
// responses (own reaction, subscribed flag) for signed-in viewers.
func (mh *MiddlewareHandler) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if user, ok := mh.userFromSession(r); ok {
			ctx := context.WithValue(r.Context(), UserContextKey, user)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) userFromSession(r *http.Request) (*models.User, bool) {
	session, err := mh.SessionStore.Get(r, SessionName)
	if err != nil {
		mh.Logger.Println("Error getting session in auth middleware:", err)
		return nil, false
	}

	if session.IsNew {
		return nil, false
	}

	userEmail, emailOk := session.Values["user_email"].(string)
	userIDStr, idOk := session.Values["user_id"].(string)

	if !emailOk || !idOk || userEmail == "" || userIDStr == "" {
		mh.Logger.Println("Invalid or missing user data in session")
		return nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		mh.Logger.Println("Invalid user ID format in session:", err)
		return nil, false
	}

	return &models.User{
		ID:    userID,
		Email: userEmail,
	}, true
}

func (mh *MiddlewareHandler) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && !isOriginAllowed(origin) {
			mh.Logger.Printf("Origin not allowed: %s", origin)
			utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Origin not allowed"})
			return
		}

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Expose-Headers", "Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		mh.Logger.Printf("Request: %s %s | Origin: %s",
			r.Method, r.URL.Path, origin)

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func isOriginAllowed(origin string) bool {
	allowedOrigins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}

func GetUserFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}
