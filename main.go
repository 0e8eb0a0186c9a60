package main

import (
	"context"
	"log"

	api "jobtrack-backend/cmd/api"
	appdomain "jobtrack-backend/internal/application/domain"
	appRepo "jobtrack-backend/internal/application/repository"
	appUsecase "jobtrack-backend/internal/application/usecase"
	authdomain "jobtrack-backend/internal/auth/domain"
	authRepo "jobtrack-backend/internal/auth/repository"
	authUsecase "jobtrack-backend/internal/auth/usecase"
	jobdomain "jobtrack-backend/internal/job/domain"
	jobRepo "jobtrack-backend/internal/job/repository"
	jobScheduler "jobtrack-backend/internal/job/scheduler"
	jobUsecase "jobtrack-backend/internal/job/usecase"
	reminderdomain "jobtrack-backend/internal/reminder/domain"
	reminderRepo "jobtrack-backend/internal/reminder/repository"
	reminderUsecase "jobtrack-backend/internal/reminder/usecase"
	scandomain "jobtrack-backend/internal/scanner/domain"
	scanRepo "jobtrack-backend/internal/scanner/repository"
	scanScheduler "jobtrack-backend/internal/scanner/scheduler"
	scanUsecase "jobtrack-backend/internal/scanner/usecase"
	"jobtrack-backend/pkg/adzuna"
	"jobtrack-backend/pkg/calendar"
	"jobtrack-backend/pkg/config"
	"jobtrack-backend/pkg/database"
	"jobtrack-backend/pkg/gmail"
	"jobtrack-backend/pkg/llm"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&appdomain.Application{},
		&reminderdomain.Reminder{},
		&jobdomain.Job{},
		&jobdomain.AppliedJob{},
		&scandomain.EmailSyncState{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Redis is optional; the job recommendation cache degrades to direct
	// queries without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Printf("[WARN] Redis unavailable, recommendation cache disabled: %v", err)
			redisClient = nil
		}
	}

	// Initialize repositories
	userRepo := authRepo.NewUserRepository(db)
	applicationRepo := appRepo.NewApplicationRepository(db)
	remindersRepo := reminderRepo.NewReminderRepository(db)
	jobsRepo := jobRepo.NewJobRepository(db)
	appliedJobsRepo := jobRepo.NewAppliedJobRepository(db)
	syncStateRepo := scanRepo.NewSyncStateRepository(db)

	// External clients
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	calendarService := calendar.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	llmService := llm.NewService(cfg.AnthropicAPIKey)
	adzunaClient := adzuna.NewClient(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry)

	// Use cases
	authUc := authUsecase.NewAuthUsecase(userRepo, cfg)
	reminderUc := reminderUsecase.NewReminderUsecase(remindersRepo, calendarService)
	appUc := appUsecase.NewApplicationUsecase(applicationRepo, reminderUc)
	jobUc := jobUsecase.NewJobUsecase(jobsRepo, appliedJobsRepo, adzunaClient, appUc, redisClient)

	// Background email scanner
	scanner := scanUsecase.NewScanner(
		userRepo,
		applicationRepo,
		syncStateRepo,
		gmailService,
		llmService,
		reminderUc,
		cfg.ActiveUserWindow,
		cfg.ScanBatchSize,
	)
	emailScheduler := scanScheduler.NewScanScheduler(scanner, cfg.ScanInterval)
	emailScheduler.Start()
	defer emailScheduler.Stop()

	// Daily job feed refresh
	feedScheduler := jobScheduler.NewJobFetchScheduler(jobUc, cfg.JobFetchCron)
	if err := feedScheduler.Start(); err != nil {
		log.Printf("[WARN] Job fetch scheduler disabled: %v", err)
	} else {
		defer feedScheduler.Stop()
	}

	// HTTP server
	handler := api.NewHandler(authUc, appUc, reminderUc, jobUc)
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
