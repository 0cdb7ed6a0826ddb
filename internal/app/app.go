package app

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/avlok/vidfeed_server/internal/auth"
	"github.com/avlok/vidfeed_server/internal/handlers"
	handler_analytics "github.com/avlok/vidfeed_server/internal/handlers/analytics"
	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/services"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/store/analytics"
	"github.com/avlok/vidfeed_server/migrations"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

var (
	authKey       = securecookie.GenerateRandomKey(64)
	encryptionKey = securecookie.GenerateRandomKey(32)
)

type Application struct {
	Logger                *log.Logger
	RedisClient           *redis.Client
	Oauth                 *auth.GoogleOauth
	SessionStore          *sessions.CookieStore
	db                    *sql.DB
	DBConn                driver.Conn
	MiddlewareHandler     *middlewares.MiddlewareHandler
	Reconciler            *services.CounterReconciler
	UserHandler           *handlers.UserHandler
	FeedHandler           *handlers.FeedHandler
	VideoHandler          *handlers.VideoHandler
	ChannelHandler        *handlers.ChannelHandler
	CommentHandler        *handlers.CommentHandler
	ReactionHandler       *handlers.ReactionHandler
	SubscriptionHandler   *handlers.SubscriptionHandler
	AnalyticsVideoHandler *handler_analytics.VideoAnalyticsHandler
}

func NewApplication() (*Application, error) {
	logger := log.New(os.Stdout, "LOGGING: ", log.Ldate|log.Ltime)

	pgDB, err := store.ConnectPGDB()
	if err != nil {
		logger.Println("Error connecting to db")
		return nil, err
	}

	dbConn, err := store.ConnectClickhouse()
	if err != nil {
		logger.Println("Error connecting to clickhouse")
		return nil, err
	}

	err = store.MigrateFS(pgDB, migrations.FS, ".")
	if err != nil {
		logger.Println("PANIC: Postgresql migration failed, exiting...")
		return nil, err
	}

	logger.Println("Database migrated...")

	err = store.MigrateClickhouse()
	if err != nil {
		logger.Println("PANIC: Clickhouse migration failed, exiting...")
		return nil, err
	}

	redisClient, err := store.ConnectRedis()
	if err != nil {
		logger.Println("Error connecting to redis")
		return nil, err
	}

	env := os.Getenv("ENV")
	var sessionOptions = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}

	if env == "production" {
		sessionOptions.Secure = true
		sessionOptions.SameSite = http.SameSiteNoneMode
		sessionOptions.Domain = os.Getenv("COOKIE_DOMAIN")
	} else {
		sessionOptions.Secure = false
		sessionOptions.SameSite = http.SameSiteLaxMode
		sessionOptions.Domain = ""
	}

	sessionStore := sessions.NewCookieStore(authKey, encryptionKey)
	sessionStore.Options = sessionOptions

	userStore := store.NewPostgresUserStore(pgDB)
	channelStore := store.NewPostgresChannelStore(pgDB)
	videoStore := store.NewPostgresVideoStore(pgDB)
	commentStore := store.NewPostgresCommentStore(pgDB)
	reactionStore := store.NewPostgresReactionStore(pgDB)
	subscriptionStore := store.NewPostgresSubscriptionStore(pgDB)
	homeCache := store.NewRedisHomeCache(redisClient)

	viewStore := analytics.NewClickhouseViewStore(dbConn)

	oauth, err := auth.NewGoogleOauth(logger, sessionStore, userStore)
	if err != nil {
		return nil, err
	}

	userHandler := handlers.NewUserHandler(userStore, sessionStore, logger)
	feedHandler := handlers.NewFeedHandler(videoStore, channelStore, homeCache, logger)
	videoHandler := handlers.NewVideoHandler(videoStore, commentStore, reactionStore, subscriptionStore, viewStore, logger)
	channelHandler := handlers.NewChannelHandler(channelStore, videoStore, logger)
	commentHandler := handlers.NewCommentHandler(commentStore, logger)
	reactionHandler := handlers.NewReactionHandler(reactionStore, logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionStore, logger)

	analyticsVideoHandler := handler_analytics.NewVideoAnalyticsHandler(viewStore, logger)

	middlewareHandler := middlewares.NewMiddlewareHandler(logger, sessionStore)

	reconciler := services.NewCounterReconciler(pgDB, logger)

	app := &Application{
		Logger:                logger,
		RedisClient:           redisClient,
		Oauth:                 oauth,
		SessionStore:          sessionStore,
		db:                    pgDB,
		DBConn:                dbConn,
		MiddlewareHandler:     middlewareHandler,
		Reconciler:            reconciler,
		UserHandler:           userHandler,
		FeedHandler:           feedHandler,
		VideoHandler:          videoHandler,
		ChannelHandler:        channelHandler,
		CommentHandler:        commentHandler,
		ReactionHandler:       reactionHandler,
		SubscriptionHandler:   subscriptionHandler,
		AnalyticsVideoHandler: analyticsVideoHandler,
	}

	return app, nil

}
