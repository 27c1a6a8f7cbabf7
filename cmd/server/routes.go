package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/rafiq/internal/config"
	"github.com/Nixie-Tech-LLC/rafiq/internal/db"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/rafiq/internal/http/api/auth/endpoints"
	readerapi "github.com/Nixie-Tech-LLC/rafiq/internal/http/api/reader/endpoints"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/rafiq/internal/session"
	"github.com/Nixie-Tech-LLC/rafiq/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, sessions *session.Manager, storageSystem storage.Storage) {
	r.Use(middleware.RequestLogger())
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		if err := db.DB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		authapi.AuthPublicModule(cfg.JWTSecret, store),
		readerapi.CatalogModule(),
		readerapi.FollowPublicModule(sessions),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Store:     store,
	},
		authapi.AuthSessionModule(cfg.JWTSecret, store),
		readerapi.ReaderModule(sessions),
		readerapi.LibraryModule(sessions),
		readerapi.BackupModule(sessions, storageSystem),
		readerapi.FollowModule(sessions),
	)
}
