package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"depscope/analysis"
	"depscope/config"
	"depscope/handlers"
	"depscope/osv"
	"depscope/storage"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     true,
		DisableQuote:    true,
		PadLevelText:    true,
	})

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "./data/app.db"
	}

	db, err := sql.Open("sqlite3", sqlitePath)
	if err != nil {
		logger.Fatalf("failed to open DB: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	store := &storage.Storage{DB: db}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.InitSchema(ctx); err != nil {
		logger.Fatalf("failed to initialize schema: %v", err)
	}

	oracle := &osv.Client{
		BaseURL:    config.OSVBaseURL,
		Ecosystem:  config.DefaultEcosystem,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}

	manager := &analysis.Manager{
		Store:         store,
		Oracle:        oracle,
		Log:           logger,
		MaxConcurrent: config.DefaultMaxConcurrent,
		BatchSize:     config.DefaultBatchSize,
	}

	handler := &handlers.Handler{
		Store:   store,
		Manager: manager,
		Log:     logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Logger)

	r.Get("/analyses", handler.ListAnalyses)
	r.Post("/analyses", handler.CreateAnalysis)
	r.Get("/analyses/{id}", handler.GetAnalysis)
	r.Delete("/analyses/{id}", handler.DeleteAnalysis)
	r.Get("/analyses/{id}/export", handler.ExportAnalysis)
	r.Post("/analyses/rescan", handler.RescanHandler)

	if os.Getenv("WITH_DAILY_VULN_RESCAN") == "true" {
		c := cron.New()
		_, err := c.AddFunc("0 0 * * *", func() {
			logger.Info("Scheduled vulnerability rescan triggered")
			ctx := context.Background()
			if err := manager.RescanVulnerabilities(ctx); err != nil {
				logger.Errorf("scheduled rescan failed: %v", err)
			}
		})
		if err != nil {
			logger.Fatalf("failed to schedule cron: %v", err)
		}
		c.Start()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Infof("starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal(err)
	}
}
