package storage

import "hockey-scraper/models"

// PivotStore is the interface a database backend must satisfy to mirror the
// pivoted and standings output.
type PivotStore interface {
	WriteTeamMatches(records []models.TeamMatchRecord) error
	WriteStandings(records []models.StandingsRecord) error
	Close() error
}
