package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Vitinho0102/LoginDoGameRate/internal/auth"
	"github.com/Vitinho0102/LoginDoGameRate/internal/catalog"
	"github.com/Vitinho0102/LoginDoGameRate/internal/collection"
	"github.com/Vitinho0102/LoginDoGameRate/internal/config"
	"github.com/Vitinho0102/LoginDoGameRate/internal/middleware"
	"github.com/Vitinho0102/LoginDoGameRate/internal/models"
	"github.com/Vitinho0102/LoginDoGameRate/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	users := store.NewUserStore(mongoClient.Database(cfg.MongoDB))
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()

	// ── MinIO ────────────────────────────────────────────────
	avatars, err := store.NewAvatarStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		log.Fatalf("minio connect: %v", err)
	}

	// ── Steam catalogue ──────────────────────────────────────
	steamClient := catalog.NewClient(cfg.SteamAPIURL, catalog.RetryPolicy{
		MaxRetries: cfg.SteamMaxRetries,
		Delay:      cfg.SteamRetryDelay,
	})
	games := catalog.NewService(steamClient, store.NewCatalogCache(rdb))
	games.Subscribe(func(snapshot []models.Game) {
		log.Printf("steam catalogue refreshed: %d games", len(snapshot))
	})
	go func() {
		if err := games.Load(context.Background()); err != nil {
			log.Printf("steam catalogue load: %v", err)
		}
	}()

	// ── Handlers ─────────────────────────────────────────────
	tokens := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	authHandler := auth.NewHandler(users, avatars, tokens)
	collectionHandler := collection.NewHandler(users)
	catalogHandler := catalog.NewHandler(games)
	requireAuth := middleware.RequireAuth(tokens, users)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/check-email", authHandler.CheckEmail)
	r.Post("/check-username", authHandler.CheckUsername)
	r.With(requireAuth).Get("/me", authHandler.Me)
	r.With(requireAuth).Post("/me/avatar", authHandler.UploadAvatar)
	r.Get("/avatars/{userID}", authHandler.Avatar)

	// Collection routes (protected)
	r.Route("/collection", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/add", collectionHandler.Add)
		r.Post("/remove", collectionHandler.Remove)
		r.Post("/check", collectionHandler.Check)
		r.Get("/", collectionHandler.List)
	})

	// Catalogue routes (public)
	r.Route("/games", func(r chi.Router) {
		r.Get("/", catalogHandler.List)
		r.Get("/top", catalogHandler.Top)
		r.Get("/{id}", catalogHandler.Get)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
