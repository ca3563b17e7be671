package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/authkeeper/internal/metrics"
	"github.com/polkiloo/authkeeper/internal/server/http/handlers"
	"github.com/polkiloo/authkeeper/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.AuthFacade, logger *slog.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.DecompressRequest())
	// promhttp negotiates its own compression.
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	authHandler := handlers.NewAuthHandler(facade, m)

	api := engine.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	verified := api.Group("")
	verified.Use(middleware.VerifyToken(facade))
	verified.GET("/checkTokenValidity", authHandler.CheckTokenValidity)
	verified.POST("/logout", authHandler.Logout)

	engine.GET("/metrics", gin.WrapH(m.Handler()))

	return engine
}
