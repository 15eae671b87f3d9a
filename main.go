package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hockey-scraper/config"
	"hockey-scraper/models"
	"hockey-scraper/scraper/englandhockey"
	"hockey-scraper/services"
	"hockey-scraper/storage"
	"hockey-scraper/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputDir  string
		noHeadless bool
		debug      bool
		season     string
	)

	root := &cobra.Command{
		Use:           "hockey-scraper",
		Short:         "Scrape England Hockey fixtures and standings, pivot to team rows, write CSV",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if noHeadless {
				cfg.Headless = false
			}
			if debug {
				cfg.Debug = true
			}

			var seasonNames []string
			if season != "" && season != "all" {
				seasonNames = []string{season}
			}

			return run(cfg, seasonNames)
		},
	}

	root.Flags().StringVar(&outputDir, "output", "", "directory for output CSV files")
	root.Flags().BoolVar(&noHeadless, "no-headless", false, "show the browser window")
	root.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.Flags().StringVar(&season, "season", "all", "season to scrape, or \"all\"")

	root.AddCommand(newPivotCmd())
	return root
}

// newPivotCmd re-pivots an existing raw match CSV without scraping.
func newPivotCmd() *cobra.Command {
	var input, output string

	pivot := &cobra.Command{
		Use:          "pivot",
		Short:        "Pivot an existing raw match CSV into team-perspective rows",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLogger(false)

			raws, err := storage.ReadMatches(input)
			if err != nil {
				return err
			}
			logger.Info("Read %d matches from %s", len(raws), input)

			pivoted := services.NewPivoter(logger).Pivot(raws)
			if err := storage.WriteTeamMatches(output, pivoted); err != nil {
				return err
			}

			logger.Info("Wrote %d team rows to %s", len(pivoted), output)
			return nil
		},
	}

	pivot.Flags().StringVar(&input, "input", "", "raw match CSV to pivot")
	pivot.Flags().StringVar(&output, "output", "./output/team_matches.csv", "destination CSV")
	_ = pivot.MarkFlagRequired("input")
	return pivot
}

func run(cfg *config.Config, seasonNames []string) error {
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== England Hockey Scraper starting ===")
	logger.Info("Config — output: %s | headless: %t | retries: %d | rate: %dms | season workers: %d",
		cfg.OutputDir, cfg.Headless, cfg.MaxRetries, cfg.RateLimitMs, cfg.SeasonConcurrency)

	// Parameter resolution happens before any network call.
	seasons, err := config.Seasons(seasonNames)
	if err != nil {
		return err
	}

	hockeyScraper := englandhockey.New(cfg, logger, seasons)
	results := hockeyScraper.Run()

	var (
		rawMatches []models.RawMatchRecord
		standings  []models.StandingsRecord
	)
	for _, r := range results {
		rawMatches = append(rawMatches, r.Matches...)
		standings = append(standings, r.Standings...)
	}

	pivoted := services.NewPivoter(logger).Pivot(rawMatches)

	// Output files are written only now, after scraping: an interrupted run
	// never touches the previous run's files.
	matchesPath := filepath.Join(cfg.OutputDir, "matches.csv")
	pivotedPath := filepath.Join(cfg.OutputDir, "team_matches.csv")
	standingsPath := filepath.Join(cfg.OutputDir, "standings.csv")

	if err := storage.WriteMatches(matchesPath, rawMatches); err != nil {
		return err
	}
	if err := storage.WriteTeamMatches(pivotedPath, pivoted); err != nil {
		return err
	}
	if err := storage.WriteStandings(standingsPath, standings); err != nil {
		return err
	}
	logger.Info("Output written: %s | %s | %s", matchesPath, pivotedPath, standingsPath)

	if cfg.PostgresEnabled {
		if err := mirrorToPostgres(cfg, logger, pivoted, standings); err != nil {
			return err
		}
	}

	summarySvc := services.NewSummaryService(logger)
	summarySvc.Print(summarySvc.Build(results, pivoted))

	fmt.Printf("  Done. Raw → %s | Pivoted → %s | Standings → %s\n\n",
		matchesPath, pivotedPath, standingsPath)
	return nil
}

func mirrorToPostgres(cfg *config.Config, logger *utils.Logger, pivoted []models.TeamMatchRecord, standings []models.StandingsRecord) error {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		return err
	}
	defer pgWriter.Close()

	if err := pgWriter.WriteTeamMatches(pivoted); err != nil {
		return err
	}
	if err := pgWriter.WriteStandings(standings); err != nil {
		return err
	}

	logger.Info("Mirrored %d team rows and %d standings rows to PostgreSQL",
		len(pivoted), len(standings))
	return nil
}
