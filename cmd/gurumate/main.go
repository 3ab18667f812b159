package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gurumate/gurumate/internal/chat"
	"github.com/gurumate/gurumate/internal/dispatch"
	"github.com/gurumate/gurumate/internal/llm"
	"github.com/gurumate/gurumate/internal/store"
)

// main is the composition root: it loads configuration, initializes all
// services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting GuruMate | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	stateStore, err := initializeStore(cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	client, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not create Gemini client: %v", err)
	}

	dispatcher, err := dispatch.New(context.Background(), stateStore)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not load application state: %v", err)
	}

	registry := chat.NewRegistry(client, dispatcher, cfg.HistoryWindow)
	handler := NewAssistantHandler(registry, dispatcher)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	registerRoutes(engine, handler)

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

func registerRoutes(engine *gin.Engine, handler *AssistantHandler) {
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/sessions", handler.HandleCreateSession)
		v1.GET("/sessions/:id/messages", handler.HandleMessages)
		v1.POST("/sessions/:id/chat", handler.HandleChat)
		v1.GET("/state", handler.HandleState)
		v1.GET("/dashboard", handler.HandleDashboard)
		v1.GET("/contacts", handler.HandleListContacts)
		v1.POST("/contacts", handler.HandleAddContact)
		v1.GET("/reports/:id/whatsapp", handler.HandleReportLink)
		v1.POST("/login", handler.HandleLogin)
		v1.POST("/logout", handler.HandleLogout)
	}
}

// initializeStore picks the persistence backend: Redis when configured,
// otherwise the local JSON file.
func initializeStore(cfg *AppConfig) (store.Store, error) {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("could not connect to Redis: %w", err)
		}
		log.Printf("✅ State store: Redis at %s", cfg.RedisAddr)
		return store.NewRedisStore(rdb), nil
	}
	log.Printf("✅ State store: local file %s", cfg.StatePath)
	return store.NewFileStore(cfg.StatePath), nil
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 GuruMate is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
