package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backtrack/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	verifier *service.TokenVerifier,
	healthH *HealthHandler,
	profileH *ProfileHandler,
	feedH *FeedHandler,
	postH *PostHandler,
	matchH *MatchHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthH.Health)
	r.POST("/match/preview", matchH.Preview)

	authed := r.Group("")
	authed.Use(JWTAuthMiddleware(verifier))

	me := authed.Group("/me")
	me.GET("/avatar", profileH.GetAvatar)
	me.PUT("/avatar", profileH.PutAvatar)

	locations := authed.Group("/locations/:id")
	locations.GET("/feed", feedH.LocationFeed)
	locations.POST("/posts", postH.CreatePost)

	return r
}

// zapLoggerMiddleware loguea cada request con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
