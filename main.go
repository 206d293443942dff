package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"dataclaw/adapters/chart"
	"dataclaw/adapters/ingest"
	"dataclaw/adapters/ingest/coercer"
	"dataclaw/adapters/postgres"
	"dataclaw/app"
	"dataclaw/internal/config"
	"dataclaw/ports"
	"dataclaw/ui"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.EnsureOutputRoot(); err != nil {
		log.Fatalf("Failed to prepare output directory: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	toolset, err := buildToolset(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to wire toolset: %v", err)
	}

	server := ui.NewServer(toolset)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, cfg.Server.Port)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildToolset wires the ingestion pipeline, renderer, optional audit
// ledger and the three services behind the tool boundary.
func buildToolset(ctx context.Context, cfg *config.Config) (*app.Toolset, error) {
	pipeline := ingest.NewPipeline(coercer.Config{NumericThreshold: cfg.Ingest.NumericThreshold})
	renderer := chart.NewRenderer(cfg.Paths.OutputRoot)

	var audit ports.RunAuditRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		audit = postgres.NewRunAuditRepository(db)
		log.Println("Run auditing enabled")
	}

	analyze := app.NewAnalyzeService(pipeline, renderer, cfg.Ingest.MaxSummaryColumns)
	clean := app.NewCleanService(cfg.Paths.OutputRoot)
	info := app.NewInfoService(pipeline, cfg.Ingest.SampleRows)
	return app.NewToolset(analyze, clean, info, audit), nil
}
