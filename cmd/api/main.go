package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"backtrack/internal/config"
	"backtrack/internal/db"
	apihttp "backtrack/internal/http"
	"backtrack/internal/matching"
	"backtrack/internal/repository"
	"backtrack/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	matchCfg, err := cfg.MatchConfig()
	if err != nil {
		logger.Fatal("match config", zap.Error(err))
	}
	matcher := matching.NewMatcher(matchCfg)

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	locationRepo := repository.NewPgLocationRepository(pool)
	postRepo := repository.NewPgPostRepository(pool)

	postWindow := time.Duration(cfg.PostRateWindowMinutes) * time.Minute
	postLimiter := service.NewPostRateLimiter(postWindow, cfg.PostRateLimit)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory post limiter", zap.Error(err))
		} else {
			postLimiter = service.NewRedisPostRateLimiter(redisClient, postWindow, cfg.PostRateLimit)
		}
		cancel()
	}

	verifier := service.NewTokenVerifier(cfg.JWTSecret, cfg.JWTAudience, cfg.JWTIssuer)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	profileSvc := service.NewProfileService(logger, profileRepo)
	feedSvc := service.NewFeedService(logger, matcher, profileRepo, locationRepo, postRepo, cfg.FeedLimit)
	postSvc := service.NewPostService(logger, postRepo, locationRepo, postLimiter)

	router := apihttp.NewRouter(
		logger,
		verifier,
		apihttp.NewHealthHandler(logger, func(ctx context.Context) error { return db.Ping(ctx, pool) }),
		apihttp.NewProfileHandler(logger, profileSvc),
		apihttp.NewFeedHandler(logger, feedSvc),
		apihttp.NewPostHandler(logger, postSvc),
		apihttp.NewMatchHandler(logger, matcher),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Int("match_threshold", matcher.Threshold()),
		zap.Bool("conditional_attributes", matchCfg.ConditionalAttributes),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
