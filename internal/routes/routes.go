package routes

import (
	"net/http"
	"time"

	"github.com/avlok/vidfeed_server/internal/app"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func SetupRoutes(app *app.Application) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httprate.LimitAll(200, time.Minute))
	r.Use(app.MiddlewareHandler.RequestLogger)
	r.Use(app.MiddlewareHandler.Security)

	r.Get("/health-check", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {

		r.Use(httprate.LimitAll(100, time.Minute))

		// Auth routes without CORS
		r.Get("/google/login", app.Oauth.Login)
		r.Get("/google/logout", app.Oauth.Logout)
		r.Get("/google/callback", app.Oauth.Callback)

		// Auth routes with CORS
		r.Group(func(r chi.Router) {
			r.Use(app.MiddlewareHandler.Cors)
			r.Get("/user", app.Oauth.AuthUser)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitAll(100, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)

		// public routes
		r.Route("/public", func(r chi.Router) {
			r.Get("/feed", app.FeedHandler.HandlerGetHomeFeed)
			r.Get("/videos", app.VideoHandler.HandlerGetVideos)
			r.Get("/videos/analytics/{id}", app.AnalyticsVideoHandler.HandlerGetDailyViews)
			r.Get("/channels", app.ChannelHandler.HandlerGetChannels)
			r.Get("/channels/{slug}", app.ChannelHandler.HandlerGetChannelBySlug)

			// The detail page personalizes for signed-in viewers but stays
			// public for everyone else.
			r.Group(func(r chi.Router) {
				r.Use(app.MiddlewareHandler.OptionalAuthenticate)
				r.Get("/videos/{id}", app.VideoHandler.HandlerGetVideoByID)
			})
		})

		// auth routes
		r.Group(func(r chi.Router) {
			r.Use(app.MiddlewareHandler.Authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", app.UserHandler.HandlerGetMe)
				r.Delete("/me", app.UserHandler.HandlerDeleteAccount)
			})

			r.Route("/videos", func(r chi.Router) {
				r.Post("/", app.VideoHandler.HandlerCreateVideo)
				r.Patch("/{id}", app.VideoHandler.HandlerUpdateVideo)
				r.Delete("/{id}", app.VideoHandler.HandlerDeleteVideo)
			})

			r.Route("/channels", func(r chi.Router) {
				r.Get("/me", app.ChannelHandler.HandlerGetMyChannel)
				r.Post("/", app.ChannelHandler.HandlerCreateChannel)
				r.Patch("/{id}", app.ChannelHandler.HandlerUpdateChannel)
				r.Delete("/{id}", app.ChannelHandler.HandlerDeleteChannel)
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", app.SubscriptionHandler.HandlerGetSubscriptions)
				r.Post("/{channelID}", app.SubscriptionHandler.HandlerSubscribe)
				r.Delete("/{channelID}", app.SubscriptionHandler.HandlerUnsubscribe)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Post("/", app.CommentHandler.HandlerCreateComment)
				r.Patch("/{id}", app.CommentHandler.HandlerUpdateComment)
				r.Delete("/{id}", app.CommentHandler.HandlerDeleteComment)
			})

			r.Post("/reactions", app.ReactionHandler.HandlerReact)
		})
	})

	return r
}
