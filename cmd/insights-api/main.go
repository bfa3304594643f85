package main

import (
	"log"
	"log/slog"

	"go-table-insights/internal/analysis"
	"go-table-insights/internal/api"
	"go-table-insights/internal/api/handler"
	"go-table-insights/internal/config"
	"go-table-insights/internal/dataset"
	"go-table-insights/internal/query"
	"go-table-insights/internal/store"
	"go-table-insights/pkg/router"

	_ "go-table-insights/docs"
)

// @title Table Insights API
// @version 1.0
// @description Natural-language query engine over tabular datasets
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Init DB
	if err := store.InitDB(cfg.Store.Path); err != nil {
		log.Fatalf("store: %v", err)
	}
	defer store.Close()

	registry := dataset.NewRegistry()

	// Without an analysis service the interpreter falls back to pattern matching.
	var analyzer query.Analyzer
	if cfg.Analysis.URL != "" {
		analyzer = analysis.NewClient(cfg.Analysis.URL, cfg.AnalysisTimeout())
		slog.Info("analysis service configured", "url", cfg.Analysis.URL, "provider", cfg.Analysis.Provider)
	} else {
		slog.Info("no analysis service configured, using pattern matching only")
	}

	interpreter := query.NewInterpreter(analyzer, cfg.Analysis.Provider, cfg.Analysis.Model)
	runner := query.NewRunner(registry, interpreter, cfg.QueryTimeout())

	// Create router and register API routes
	r := router.New()
	api.RegisterRoutes(r, &handler.Handler{Registry: registry, Runner: runner})

	// Start server
	if err := r.Start(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
