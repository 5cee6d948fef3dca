package main

import (
	"database/sql"
	"flag"
	"log"

	"booknet-backend/internal/config"
	"booknet-backend/internal/jobs"
	"booknet-backend/internal/logger"
	"booknet-backend/internal/repository/postgres"
	"booknet-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Manual runner for the scheduled jobs, for operating them outside the
// server process (one-off runs, migration windows, debugging).
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	job := flag.String("job", "nightly", "Job to run: nightly | loan-reminders")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	runner := jobs.NewJobRunner(store.LoanRepository, store.BookRepository, store.UserRepository, emailSvc, cfg)

	switch *job {
	case "nightly":
		runner.RunAllNightlyJobs()
	case "loan-reminders":
		runner.SendLoanReminders()
	default:
		log.Fatalf("Unknown job: %s", *job)
	}
}
