package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/calendar"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/export"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/handler"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/logger"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/middleware"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/roster"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/router"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/validator"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Bool("enforce_credit_floor", cfg.EnforceCreditFloor).
		Msg("Starting studio backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── External Collaborators ────────────────────────────────────────
	var creator calendar.Creator = calendar.Unconfigured{}
	var rosterChecker *roster.Checker
	if cfg.GoogleCredentialsFile == "" {
		log.Warn().Msg("GOOGLE_APPLICATION_CREDENTIALS not set: calendar and roster lookups are disabled")
	} else {
		gc, err := calendar.NewGoogleCreator(ctx, cfg.GoogleCredentialsFile, cfg.CalendarID)
		if err != nil {
			log.Error().Err(err).Msg("Google Calendar client init failed, calendar disabled")
		} else {
			creator = gc
		}

		if cfg.RosterSpreadsheetID == "" {
			log.Warn().Msg("ROSTER_SPREADSHEET_ID not set: form checks will fail")
		} else {
			fetcher, err := roster.NewSheetsFetcher(ctx, cfg.GoogleCredentialsFile, cfg.RosterSpreadsheetID, cfg.RosterRange)
			if err != nil {
				log.Error().Err(err).Msg("Google Sheets client init failed, form checks disabled")
			} else {
				rosterChecker = roster.NewChecker(fetcher, cfg.RosterCacheTTL)
			}
		}
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	approvalRepo := repository.NewApprovalRepository(pool)
	guestRepo := repository.NewGuestListRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)
	concertRepo := repository.NewConcertRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	events := service.NewRedisEventPublisher(rdb, log)
	authService := service.NewAuthService(cfg, userRepo, rdb, log)
	calendarService := service.NewCalendarService(creator, rdb, cfg.CalendarTimeZone, cfg.CalendarRetryBackoff, log)
	approvalService := service.NewApprovalService(
		service.NewPostgresApprovalStore(approvalRepo, requestRepo),
		calendarService,
		events,
		cfg.EnforceCreditFloor,
		log,
	)
	requestService := service.NewRequestService(requestRepo, events, log)
	userService := service.NewUserService(userRepo, requestRepo, log)
	formService := service.NewFormService(rosterChecker, userRepo, log)
	contentService := service.NewContentService(noticeRepo, concertRepo, rdb, cfg.ContentCacheTTL, log)
	documentService := service.NewDocumentService(documentRepo, contentService, log)
	exportService := service.NewExportService(userRepo, requestRepo, guestRepo, export.NewRenderer(cfg.PDFFontPath), log)
	dashboardService := service.NewDashboardService(dashboardRepo, guestRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Student:   handler.NewStudentHandler(userService, requestService, formService),
		Request:   handler.NewRequestHandler(approvalService, requestService),
		Calendar:  handler.NewCalendarHandler(calendarService),
		Form:      handler.NewFormHandler(formService),
		AdminUser: handler.NewAdminUserHandler(userService),
		Content:   handler.NewContentHandler(contentService),
		Document:  handler.NewDocumentHandler(documentService),
		Export:    handler.NewExportHandler(exportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		WS:        handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
		System:    handler.NewSystemHandler(pool, rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	calendarWorker := worker.NewCalendarWorker(creator, rdb, cfg.CalendarMaxAttempts, cfg.CalendarRetryBackoff, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		calendarWorker.Start(workerCtx)
	}()

	// Rate limiter for auth and form-check routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)
	go authLimiter.RunCleanup(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	if _, err := contentService.ListNotices(ctx); err != nil {
		log.Warn().Err(err).Msg("Notice cache prewarm failed")
	}
	if _, err := contentService.ListUpcomingConcerts(ctx); err != nil {
		log.Warn().Err(err).Msg("Concert cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, authLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the calendar queue drain.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
