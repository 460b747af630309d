// Sleep Diary API
//
// REST API for a CBT-i sleep diary: raw night logging, derived sleep
// metrics, and the sleep-window adjustment engine.
//
//	@title			Sleep Diary API
//	@version		1.0
//	@description	Log nights, derive TIB/WASO/TST/SE, and manage the prescribed sleep window.
//
//	@BasePath	/v1
//
//	@tag.name			diary
//	@tag.description	Raw sleep diary entries
//
//	@tag.name			metrics
//	@tag.description	Derived per-night and rolling metrics
//
//	@tag.name			plan
//	@tag.description	Sleep window prescriptions and adjustment
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/cbti-tools/sleep-diary/internal/api"
	"github.com/cbti-tools/sleep-diary/internal/api/handler"
	"github.com/cbti-tools/sleep-diary/internal/config"
	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/ledger"
	"github.com/cbti-tools/sleep-diary/internal/repository"
	"github.com/cbti-tools/sleep-diary/internal/seed"
	"github.com/cbti-tools/sleep-diary/internal/service"
	"github.com/cbti-tools/sleep-diary/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "sleep-diary-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(shutdownCtx)
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.DiaryEntry{}, &domain.WindowHistoryRecord{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	diaryRepo := repository.NewDiaryRepository(db)
	windowRepo := repository.NewWindowRepository(db)
	store := repository.NewStore(diaryRepo, windowRepo)

	// Load the window history and bring up the ledger. A fresh store
	// gets the initial plan from configuration.
	_, records, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load store: %v", err)
	}
	if len(records) == 0 {
		initial := cfg.InitialWindow()
		records = []domain.WindowHistoryRecord{{
			EffectiveFrom: time.Now().Format(domain.DateLayout),
			TargetWake:    initial.TargetWake,
			WindowMinutes: initial.WindowMinutes,
			Rationale:     domain.RationaleInitial,
		}}
		if err := windowRepo.ReplaceAll(ctx, records); err != nil {
			log.Fatalf("Failed to write initial window record: %v", err)
		}
		log.Printf("Initialized window history: wake %s, %dm window",
			initial.TargetWake, initial.WindowMinutes)
	}

	windowLedger, err := ledger.New(records)
	if err != nil {
		log.Fatalf("Failed to build window ledger: %v", err)
	}

	// Initialize services
	diaryService := service.NewDiaryService(diaryRepo)
	metricsService := service.NewMetricsService(diaryRepo, windowLedger)
	planService := service.NewPlanService(windowLedger, windowRepo, metricsService, cfg.RollingWindowDays, nil)

	// Initialize handlers
	diaryHandler := handler.NewDiaryHandler(diaryService)
	metricsHandler := handler.NewMetricsHandler(metricsService, cfg.RollingWindowDays, nil)
	planHandler := handler.NewPlanHandler(planService)

	// Setup router
	router := api.NewRouter(diaryHandler, metricsHandler, planHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
