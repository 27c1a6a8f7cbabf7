package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"

	"github.com/Nixie-Tech-LLC/rafiq/internal/broadcast"
	"github.com/Nixie-Tech-LLC/rafiq/internal/config"
	"github.com/Nixie-Tech-LLC/rafiq/internal/db"
	"github.com/Nixie-Tech-LLC/rafiq/internal/navigator"
	"github.com/Nixie-Tech-LLC/rafiq/internal/redis"
	"github.com/Nixie-Tech-LLC/rafiq/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(db.DB, db.MigrationsDir(cfg.MigrationsPath, db.DB)); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(db.DB)

	opts := []session.Option{
		session.WithZoom(navigator.ZoomRange{Min: cfg.ZoomMin, Max: cfg.ZoomMax}),
	}

	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		opts = append(opts, session.WithCache(redis.NewStateCache(redis.Rdb, cfg.StateCacheTTL)))
		log.Info().Str("addr", cfg.RedisAddress).Msg("reader state cache enabled")
	}

	var publisher broadcast.Publisher = broadcast.Nop{}
	if cfg.MQTTBrokerURL != "" {
		p, err := broadcast.NewMQTTPublisher(cfg.MQTTBrokerURL, cfg.MQTTClientID)
		if err != nil {
			// following is optional; keep serving without it
			log.Error().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("position broadcast disabled")
		} else {
			publisher = p
		}
	}
	opts = append(opts, session.WithPublisher(publisher))

	sessions := session.NewManager(store, opts...)
	storageSystem := InitStorage(cfg)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, store, sessions, storageSystem)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs error
	errs = multierr.Append(errs, srv.Shutdown(ctx))
	publisher.Close()
	if redis.Rdb != nil {
		errs = multierr.Append(errs, redis.Rdb.Close())
	}
	errs = multierr.Append(errs, db.DB.Close())

	for _, err := range multierr.Errors(errs) {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
