package services

import (
	"testing"

	"hockey-scraper/models"
)

func TestBuildSummaryCountsFailedSeason(t *testing.T) {
	svc := NewSummaryService(newTestLogger())

	results := []models.SeasonResult{
		{
			Season: "2024-2025",
			Status: models.SeasonDone,
			Matches: []models.RawMatchRecord{
				{WeekDate: "d", HomeTeam: "A", AwayTeam: "B", Season: "2024-2025"},
			},
			Standings:    []models.StandingsRecord{{Team: "A", Season: "2024-2025"}},
			DatesSkipped: 1,
			RowsDropped:  2,
		},
		// First page load never succeeded: zero records, FAILED.
		{Season: "2023-2024", Status: models.SeasonFailed},
	}

	summary := svc.Build(results, nil)

	if summary.MatchesExtracted != 1 {
		t.Errorf("MatchesExtracted = %d; want 1", summary.MatchesExtracted)
	}
	if summary.StandingsExtracted != 1 {
		t.Errorf("StandingsExtracted = %d; want 1", summary.StandingsExtracted)
	}
	if summary.RowsDropped != 2 || summary.DatesSkipped != 1 {
		t.Errorf("drops/skips = %d/%d; want 2/1", summary.RowsDropped, summary.DatesSkipped)
	}
	if summary.SeasonsCompleted != 1 {
		t.Errorf("SeasonsCompleted = %d; want 1", summary.SeasonsCompleted)
	}
	if len(summary.SeasonsFailed) != 1 || summary.SeasonsFailed[0] != "2023-2024" {
		t.Errorf("SeasonsFailed = %v; want [2023-2024]", summary.SeasonsFailed)
	}
	if summary.MatchesBySeason["2023-2024"] != 0 {
		t.Errorf("failed season should contribute zero matches, got %d",
			summary.MatchesBySeason["2023-2024"])
	}
}

func TestBuildSummaryResultDistribution(t *testing.T) {
	svc := NewSummaryService(newTestLogger())

	pivoted := []models.TeamMatchRecord{
		{Result: models.ResultWin},
		{Result: models.ResultLoss},
		{Result: models.ResultDraw},
		{Result: models.ResultDraw},
		{Result: models.ResultUnplayed},
	}

	summary := svc.Build(nil, pivoted)

	want := map[models.Result]int{
		models.ResultWin:      1,
		models.ResultLoss:     1,
		models.ResultDraw:     2,
		models.ResultUnplayed: 1,
	}
	for result, count := range want {
		if summary.ResultCounts[result] != count {
			t.Errorf("ResultCounts[%s] = %d; want %d", result, summary.ResultCounts[result], count)
		}
	}
}
