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
	"github.com/iamasit07/gomoku-agent/internal/config"
	"github.com/iamasit07/gomoku-agent/internal/repository/redis"
	"github.com/iamasit07/gomoku-agent/internal/service/agent"
	"github.com/iamasit07/gomoku-agent/internal/service/analytics"
	"github.com/iamasit07/gomoku-agent/internal/service/bot"
	"github.com/iamasit07/gomoku-agent/internal/service/cleanup"
	"github.com/iamasit07/gomoku-agent/internal/service/game"
	"github.com/iamasit07/gomoku-agent/internal/service/llm"
	transportHttp "github.com/iamasit07/gomoku-agent/internal/transport/http"
	"github.com/iamasit07/gomoku-agent/internal/transport/http/middleware"
	"github.com/iamasit07/gomoku-agent/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// 1. Remote model client (optional)
	var client llm.Client
	if openaiClient, err := llm.NewOpenAIClient(llm.Options{
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Endpoint:    cfg.LLMEndpoint,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	}); err != nil {
		log.Printf("LLM disabled: %v", err)
	} else {
		client = openaiClient
	}

	// 2. Redis call limiter (optional)
	var limiter agent.CallLimiter
	if cfg.RedisURL != "" && cfg.LLMCallsPerMinute > 0 {
		if err := redis.InitRedis(); err != nil {
			log.Printf("Failed to initialize Redis: %v", err)
		}
		defer redis.CloseRedis()
		if redis.IsRedisEnabled() {
			limiter = redis.NewCallLimiter(redis.RedisClient, cfg.LLMCallsPerMinute, time.Minute)
			log.Printf("[REDIS] Limiting LLM calls to %d per minute", cfg.LLMCallsPerMinute)
		}
	}

	// 3. Decision analytics (optional)
	var events agent.EventEmitter
	if producer := analytics.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic); producer != nil {
		defer producer.Close()
		events = producer
	}

	// 4. Agent and play sessions
	weights := bot.Weights{CenterReach: cfg.CenterReach, NeighborBonus: cfg.NeighborBonus}
	gomokuAgent := agent.New(client, limiter, events, agent.Config{
		Timeout:    cfg.LLMTimeout,
		Difficulty: cfg.BotDifficulty,
		Weights:    weights,
	})

	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(func(difficulty string) game.Mover {
		return gomokuAgent.WithDifficulty(difficulty)
	}, connManager)

	cleanupWorker := cleanup.NewWorker(sessionManager, time.Hour)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// 5. HTTP handlers
	agentHandler := transportHttp.NewAgentHandler(gomokuAgent, weights)
	watchHandler := transportHttp.NewWatchHandler(sessionManager)
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AllowedOrigins)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", agentHandler.Health)
	router.POST("/api/move", agentHandler.SuggestMove)
	router.POST("/api/analyze", agentHandler.Analyze)
	router.GET("/api/games", watchHandler.GetLiveGames)

	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server exited gracefully")
}
