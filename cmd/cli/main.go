package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dataclaw/adapters/chart"
	"dataclaw/adapters/ingest"
	"dataclaw/adapters/ingest/coercer"
	"dataclaw/app"
	"dataclaw/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dataclaw-cli",
		Short: "DataClaw CLI for analyzing, cleaning and inspecting dirty CSV files",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newCleanCmd(),
		newInfoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildToolset() *app.Toolset {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.EnsureOutputRoot(); err != nil {
		log.Fatalf("Failed to prepare output directory: %v", err)
	}

	pipeline := ingest.NewPipeline(coercer.Config{NumericThreshold: cfg.Ingest.NumericThreshold})
	renderer := chart.NewRenderer(cfg.Paths.OutputRoot)
	analyze := app.NewAnalyzeService(pipeline, renderer, cfg.Ingest.MaxSummaryColumns)
	clean := app.NewCleanService(cfg.Paths.OutputRoot)
	info := app.NewInfoService(pipeline, cfg.Ingest.SampleRows)
	return app.NewToolset(analyze, clean, info, nil)
}

func newAnalyzeCmd() *cobra.Command {
	var question string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a delimited file: totals, trends, top categories, outliers",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			toolset := buildToolset()
			fmt.Println(toolset.AnalyzeCSV(cmd.Context(), args[0], question))
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", "", "free-text question echoed into the report")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Remove duplicate and blank rows, writing a cleaned copy",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			toolset := buildToolset()
			fmt.Println(toolset.CleanCSV(cmd.Context(), args[0], output))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", app.DefaultOutputName, "output file name (.csv or .xlsx)")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Quick per-column diagnostic: type, null rate, example value",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			toolset := buildToolset()
			fmt.Println(toolset.CSVInfo(cmd.Context(), args[0]))
		},
	}
}
