package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "booknet-backend/internal/api/http"
	"booknet-backend/internal/config"
	"booknet-backend/internal/jobs"
	"booknet-backend/internal/logger"
	"booknet-backend/internal/repository/postgres"
	"booknet-backend/internal/scheduler"
	"booknet-backend/internal/security"
	"booknet-backend/internal/service"
	"booknet-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// A missing .env is fine; config falls back to the YAML values.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Booknet backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authMW := httpapi.NewAuthMiddleware(tokenManager)

	fileStore, err := storage.NewLocalFileStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	locks := service.NewBookLocks()
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	bookSvc := service.NewBookService(store.BookRepository, store.FeedbackRepository, locks)
	lendingSvc := service.NewLendingService(
		store.LoanRepository,
		store.BookRepository,
		store.UserRepository,
		emailSvc,
		locks,
	)
	feedbackSvc := service.NewFeedbackService(store.FeedbackRepository, store.BookRepository)

	authHandler := httpapi.NewAuthHandler(authSvc)
	bookHandler := httpapi.NewBookHandler(bookSvc, fileStore, cfg.Storage.MaxFileSizeMB)
	lendingHandler := httpapi.NewLendingHandler(lendingSvc)
	feedbackHandler := httpapi.NewFeedbackHandler(feedbackSvc)

	router := httpapi.NewRouter(authHandler, bookHandler, lendingHandler, feedbackHandler, authMW)

	jobRunner := jobs.NewJobRunner(store.LoanRepository, store.BookRepository, store.UserRepository, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
