package services

import (
	"fmt"
	"sort"
	"strings"

	"hockey-scraper/models"
	"hockey-scraper/utils"
)

// SummaryService aggregates per-season results into the user-visible run
// summary and renders it.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Build compiles the accounting of a run: extraction totals, drops, skipped
// dates, failed seasons and the result distribution of the pivoted rows.
func (s *SummaryService) Build(results []models.SeasonResult, pivoted []models.TeamMatchRecord) *models.RunSummary {
	summary := &models.RunSummary{
		ResultCounts:    make(map[models.Result]int),
		MatchesBySeason: make(map[string]int),
	}

	for _, r := range results {
		summary.MatchesExtracted += len(r.Matches)
		summary.StandingsExtracted += len(r.Standings)
		summary.RowsDropped += r.RowsDropped
		summary.DatesSkipped += r.DatesSkipped
		summary.MatchesBySeason[r.Season] = len(r.Matches)

		if r.Status == models.SeasonFailed {
			summary.SeasonsFailed = append(summary.SeasonsFailed, r.Season)
		} else {
			summary.SeasonsCompleted++
		}
	}

	for _, t := range pivoted {
		summary.ResultCounts[t.Result]++
	}

	return summary
}

// Print renders the run summary to stdout.
func (s *SummaryService) Print(r *models.RunSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏑 HOCKEY SCRAPE SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Extraction\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Matches extracted   : \033[1m%d\033[0m\n", r.MatchesExtracted)
	fmt.Printf("  Standings rows      : \033[1m%d\033[0m\n", r.StandingsExtracted)
	fmt.Printf("  Rows dropped        : \033[1m%d\033[0m\n", r.RowsDropped)
	fmt.Printf("  Dates skipped       : \033[1m%d\033[0m\n", r.DatesSkipped)
	fmt.Println()

	fmt.Printf("\033[1;33m  Seasons\033[0m\n")
	fmt.Printf("  %s\n", thin)
	var seasons []string
	for season := range r.MatchesBySeason {
		seasons = append(seasons, season)
	}
	sort.Strings(seasons)
	for _, season := range seasons {
		fmt.Printf("  %-12s : %d matches\n", season, r.MatchesBySeason[season])
	}
	if len(r.SeasonsFailed) > 0 {
		fmt.Printf("  \033[1;31mFailed: %s\033[0m\n", strings.Join(r.SeasonsFailed, ", "))
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Results (team perspective)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ResultCounts) == 0 {
		fmt.Printf("  No pivoted rows\n")
	} else {
		for _, result := range []models.Result{
			models.ResultWin, models.ResultLoss, models.ResultDraw, models.ResultUnplayed,
		} {
			if count := r.ResultCounts[result]; count > 0 {
				bar := strings.Repeat("█", barWidth(count, r.ResultCounts))
				fmt.Printf("  %-8s %s (%d)\n", result, bar, count)
			}
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// barWidth scales a count into at most 40 bar characters.
func barWidth(count int, all map[models.Result]int) int {
	max := 0
	for _, c := range all {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return 0
	}
	w := count * 40 / max
	if w < 1 {
		w = 1
	}
	return w
}
