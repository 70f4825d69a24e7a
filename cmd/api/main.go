package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dropfour/backend/internal/analytics"
	"github.com/dropfour/backend/internal/config"
	"github.com/dropfour/backend/internal/repository/postgres"
	"github.com/dropfour/backend/internal/repository/redis"
	"github.com/dropfour/backend/internal/service/bot"
	"github.com/dropfour/backend/internal/service/cleanup"
	"github.com/dropfour/backend/internal/service/game"
	"github.com/dropfour/backend/internal/service/matchmaking"
	transportHttp "github.com/dropfour/backend/internal/transport/http"
	"github.com/dropfour/backend/internal/transport/http/middleware"
	"github.com/dropfour/backend/internal/transport/websocket"
	"github.com/dropfour/backend/pkg/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	cache := redis.Connect(cfg.RedisAddr, cfg.RedisPassword)
	defer cache.Close()

	producer := analytics.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	userRepo := postgres.NewUserRepo(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	bots := bot.NewService(cfg.EngineDepth)
	sessions := game.NewManager(userRepo, bots, producer)
	queue := matchmaking.NewQueue(cfg.MatchmakingTimeout)

	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, queue, sessions, tokens, cfg.AllowedOrigins)
	go wsHandler.RunMatchListener()

	cleanupWorker := cleanup.NewWorker(sessions)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	authHandler := transportHttp.NewAuthHandler(userRepo, tokens)
	oauthHandler := transportHttp.NewOAuthHandler(userRepo, tokens, cfg.OAuth)
	leaderboardHandler := transportHttp.NewLeaderboardHandler(userRepo, cache)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := router.Group("/api")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", middleware.Auth(tokens), authHandler.Me)
		api.GET("/auth/google/login", oauthHandler.GoogleLogin)
		api.GET("/auth/google/callback", oauthHandler.GoogleCallback)
		api.GET("/leaderboard", leaderboardHandler.Get)
	}

	router.GET("/ws", wsHandler.Serve)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server is listening on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Server is shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
