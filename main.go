package main

import (
	"context"
	"net/http"
	"os"

	"github.com/hanksha/fitclass-booking/api"
	bk "github.com/hanksha/fitclass-booking/booking"
	"github.com/hanksha/fitclass-booking/config"
	"github.com/hanksha/fitclass-booking/discord"
	"github.com/hanksha/fitclass-booking/dummyjson"
	"github.com/hanksha/fitclass-booking/logging"
	"github.com/hanksha/fitclass-booking/mockapi"
	"github.com/hanksha/fitclass-booking/notify"
	"github.com/hanksha/fitclass-booking/session"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	bootstrap := zap.Must(zap.NewProduction())

	cfg, err := config.Load()

	if err != nil {
		bootstrap.Fatal("invalid configuration", zap.Error(err))
	}

	logger, err := logging.New(cfg.LogPath, cfg.Debug)

	if err != nil {
		bootstrap.Fatal("failed to create logger", zap.Error(err))
	}

	defer logger.Sync()

	storage, closeStorage := openStorage(cfg, logger)
	defer closeStorage()

	var notifier notify.Notifier = notify.NewLogNotifier(logger.Named("notice"))

	if len(cfg.DiscordBotToken) > 0 && len(cfg.DiscordChannelID) > 0 {
		discordClient := discord.NewClient(cfg.DiscordBotToken)
		notifier = notify.Multi{notifier, discord.NewChannelNotifier(discordClient, cfg.DiscordChannelID, logger.Named("discord"))}
		logger.Info("forwarding notices to discord", zap.String("channelId", cfg.DiscordChannelID))
	}

	authClient := dummyjson.NewClient(cfg.AuthURL, cfg.TokenExpiresMins)

	store := session.NewStore(authClient, storage,
		session.WithEntryName(cfg.SessionEntryName),
		session.WithNotifier(notifier),
		session.WithLogger(logger.Named("session")),
	)
	defer store.Close()

	store.Subscribe(func(state session.State) {
		if !state.Authenticated && !state.Loading && len(state.Error) == 0 {
			logger.Debug("session cleared")
		}
	})

	if err := store.Rehydrate(context.Background()); err != nil {
		logger.Warn("failed to restore session", zap.Error(err))
	}

	bookingService := bk.NewService(
		mockapi.NewClient(cfg.MockAPIURL),
		bk.NewQueryCache(cfg.QueryStaleTime),
		notifier,
		logger.Named("booking"),
		bk.WithRetries(cfg.QueryRetries, nil),
	)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// SESSION API

	sessionHandler := api.NewSessionHandler(store)
	sessionHandler.Register(r.Group("/api/v1/session"))

	// BOOKING API

	bookingHandler := api.NewBookingHandler(bookingService)
	bookingHandler.RegisterClasses(r.Group("/api/v1/classes"))

	bookingRouter := r.Group("/api/v1/bookings")
	bookingRouter.Use(api.SessionAuth(store))
	bookingHandler.Register(bookingRouter)

	logger.Info("starting server", zap.String("addr", cfg.APIAddr), zap.String("mockApi", cfg.MockAPIURL))

	if err := r.Run(cfg.APIAddr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func openStorage(cfg config.Config, logger *zap.Logger) (session.Storage, func()) {
	switch cfg.SessionStorage {
	case "memory":
		return session.NewMemoryStorage(), func() {}

	case "postgres":
		logger.Info("connecting to PostgreSQL database")
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)

		if err != nil {
			logger.Fatal("unable to connect to database", zap.Error(err))
		}

		storage := session.NewPostgresStorage(pool)

		if err := storage.Setup(context.Background()); err != nil {
			pool.Close()
			logger.Fatal("failed to initialize tables", zap.Error(err))
		}

		logger.Info("initialized database tables")

		return storage, pool.Close

	default:
		storage, err := session.NewFileStorage(cfg.SessionStorageDir)

		if err != nil {
			logger.Fatal("unable to open session directory", zap.Error(err), zap.String("dir", cfg.SessionStorageDir))
		}

		return storage, func() {}
	}
}
