package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hockey-scraper/models"
)

// ReadMatches loads a raw match CSV previously produced by WriteMatches.
// Columns are resolved by header name so extra or reordered columns from an
// older file are tolerated.
func ReadMatches(path string) ([]models.RawMatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: file has no header row", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Week Date", "Home Team", "Away Team"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("read %s: missing column %q", path, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	matches := make([]models.RawMatchRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		matches = append(matches, models.RawMatchRecord{
			WeekDate:    field(row, "Week Date"),
			HomeTeam:    field(row, "Home Team"),
			AwayTeam:    field(row, "Away Team"),
			HomeScore:   parseOptionalScore(field(row, "Home Score")),
			AwayScore:   parseOptionalScore(field(row, "Away Score")),
			Season:      field(row, "Season"),
			Competition: field(row, "Competition"),
			Location:    field(row, "Location"),
			Kickoff:     field(row, "Kickoff"),
		})
	}
	return matches, nil
}

func parseOptionalScore(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
