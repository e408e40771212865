package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/andrewpaige1/quizset-api/auth"
	"github.com/andrewpaige1/quizset-api/config"
	"github.com/andrewpaige1/quizset-api/handlers"
	"github.com/andrewpaige1/quizset-api/middleware"
	"github.com/andrewpaige1/quizset-api/session"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	log.Printf("database connected (%s)", cfg.DBDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		client, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		store = session.NewRedisStore(client)
		log.Printf("session store: redis at %s", cfg.RedisAddr)
	}
	sessions := session.NewManager(store, cfg.SessionMaxAge)
	go sessions.Run(ctx, cfg.SessionSweepInterval)

	var tokens *auth.Issuer
	if cfg.JWTSecretKey != "" {
		tokens, err = auth.NewIssuer(cfg.JWTSecretKey, cfg.JWTIssuer, cfg.JWTAudience)
		if err != nil {
			log.Fatalf("auth: %v", err)
		}
	} else {
		log.Println("JWT_SECRET_KEY not set, session tokens disabled")
	}

	DBHandler := handlers.NewDBHandler(db, sessions, tokens)

	var guard handlers.Guard
	if cfg.AuthRequired {
		guard = func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.RequireSession(sessions, next)
		}
	}
	mux := handlers.NewRouter(DBHandler, guard)

	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
		log.Printf("serving static files from %s", cfg.StaticDir)
	}

	var handler http.Handler = mux
	if tokens != nil {
		handler = middleware.EnsureValidToken(tokens)(handler)
	}

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLogger(handler))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("server stopped")
}
