package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/config"
	"github.com/polltech/smarttutors/internal/domain/admin"
	"github.com/polltech/smarttutors/internal/domain/auth"
	"github.com/polltech/smarttutors/internal/domain/chat"
	"github.com/polltech/smarttutors/internal/domain/image"
	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/notify"
	"github.com/polltech/smarttutors/internal/domain/payment"
	"github.com/polltech/smarttutors/internal/domain/settings"
	"github.com/polltech/smarttutors/internal/domain/uptime"
	"github.com/polltech/smarttutors/internal/domain/user"
	"github.com/polltech/smarttutors/internal/middleware"
	"github.com/polltech/smarttutors/internal/pkg/database"
	"github.com/polltech/smarttutors/internal/pkg/gemini"
	"github.com/polltech/smarttutors/internal/pkg/images"
	pkgimaging "github.com/polltech/smarttutors/internal/pkg/imaging"
	"github.com/polltech/smarttutors/internal/pkg/jwt"
	pkgresponse "github.com/polltech/smarttutors/internal/pkg/response"
	"github.com/polltech/smarttutors/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting SmartTutors API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Storage ----------
	var store storage.Storage
	if cfg.R2AccountID != "" {
		store, err = storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 storage")
		}
	} else {
		log.Warn().Msg("R2 not configured, branding uploads and self-hosted placeholders disabled")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	ledgerRepo := ledger.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	settingsRepo := settings.NewRepository(db)
	chatRepo := chat.NewRepository(db)
	imageRepo := image.NewRepository(db)
	uptimeRepo := uptime.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := notify.NewHub(redis)
	go hub.Run()

	// ---------- Services ----------
	settingsService := settings.NewService(settingsRepo, redis, log.Logger)
	ledgerService := ledger.NewService(ledgerRepo, &ledgerStudentLister{repo: userRepo}, notify.NewLedgerNotifier(hub))
	paymentService := payment.NewService(db, paymentRepo, ledgerService)
	authService := auth.NewService(userRepo, ledgerService, settingsService, jwtService, redis)

	tutorClient := gemini.NewClient(gemini.Config{
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
	})
	chatService := chat.NewService(chatRepo, ledgerService, settingsService, &chatProfileSource{repo: userRepo}, tutorClient)
	imageService := image.NewService(imageRepo, ledgerService, settingsService, images.NewChain(log.Logger), store)

	adminService := admin.NewService(userRepo, admin.Counters{
		CountChats:  chatRepo.Count,
		CountImages: imageRepo.Count,
	})

	// Bootstrap admin account
	if err := adminService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure admin account")
	}

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	chatHandler := chat.NewHandler(chatService)
	imageHandler := image.NewHandler(imageService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	paymentHandler := payment.NewHandler(paymentService)
	settingsHandler := settings.NewHandler(settingsService)
	uptimeHandler := uptime.NewHandler(uptimeRepo, cfg.PingSecret)
	notifyHandler := notify.NewHandler(hub, cfg.AllowedOrigins)
	adminHandler := admin.NewHandler(
		adminService,
		userRepo,
		ledgerService,
		paymentService,
		settingsService,
		uptimeRepo,
		pkgimaging.NewProcessor(pkgimaging.DefaultConfig()),
		store,
	)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(notifyHandler.Serve)).ServeHTTP(w, r)
	})

	// Compress for everything else
	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{
				"status":  "ok",
				"version": "1.0.0",
			})
		})

		// Keep-alive probe for external uptime monitors
		r.Get("/ping", uptimeHandler.Ping)

		r.Route("/api/v1", func(r chi.Router) {
			r.Mount("/auth", authHandler.Routes(authMiddleware))
			r.Mount("/chat", chatHandler.Routes(authMiddleware))
			r.Mount("/images", imageHandler.Routes(authMiddleware))
			r.Mount("/tokens", ledgerHandler.Routes(authMiddleware))
			r.Mount("/payments", paymentHandler.Routes(authMiddleware))
			r.Mount("/settings", settingsHandler.Routes())

			r.Mount("/admin", adminHandler.Routes(authMiddleware, middleware.RequireAdmin()))
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	hub.Shutdown()

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// Adapter implementations to bridge interface mismatches

// ledgerStudentLister adapts user.Repository to ledger.StudentLister
type ledgerStudentLister struct {
	repo user.Repository
}

func (a *ledgerStudentLister) ListStudentIDs(ctx context.Context) ([]uuid.UUID, error) {
	return a.repo.ListIDsByRole(ctx, user.RoleStudent)
}

// chatProfileSource adapts user.Repository to chat.ProfileSource
type chatProfileSource struct {
	repo user.Repository
}

func (a *chatProfileSource) Profile(ctx context.Context, userID uuid.UUID) (string, string, error) {
	u, err := a.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return u.EducationLevel.String, u.Curriculum.String, nil
}
