package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"hockey-scraper/models"
)

// PostgresWriter mirrors the pivoted and standings output into PostgreSQL.
// Each run replaces the previous run's rows wholesale.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS team_matches (
			id             SERIAL PRIMARY KEY,
			week_date      VARCHAR(20) NOT NULL,
			team_role      VARCHAR(4)  NOT NULL,
			team           TEXT        NOT NULL,
			opponent       TEXT        NOT NULL,
			team_score     INT,
			opponent_score INT,
			result         VARCHAR(10) NOT NULL,
			season         VARCHAR(20) NOT NULL,
			competition    TEXT        NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS standings (
			id            SERIAL PRIMARY KEY,
			team          TEXT        NOT NULL,
			played        INT         NOT NULL,
			won           INT         NOT NULL,
			drawn         INT         NOT NULL,
			lost          INT         NOT NULL,
			points        INT         NOT NULL,
			goals_for     INT         NOT NULL,
			goals_against INT         NOT NULL,
			season        VARCHAR(20) NOT NULL,
			position      INT         NOT NULL DEFAULT 0,
			goal_diff     INT         NOT NULL DEFAULT 0,
			competition   TEXT        NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_team_matches_team   ON team_matches(team);
		CREATE INDEX IF NOT EXISTS idx_team_matches_season ON team_matches(season);
		CREATE INDEX IF NOT EXISTS idx_standings_season    ON standings(season);
	`)
	return err
}

// WriteTeamMatches clears the team_matches table and batch-inserts the
// pivoted rows.
func (pw *PostgresWriter) WriteTeamMatches(records []models.TeamMatchRecord) error {
	if _, err := pw.db.Exec("DELETE FROM team_matches"); err != nil {
		return fmt.Errorf("postgres: clear team_matches: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertTeamMatchBatch(records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertTeamMatchBatch(batch []models.TeamMatchRecord) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, t := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			t.WeekDate, string(t.Role), t.Team, t.Opponent,
			t.TeamScore, t.OpponentScore, string(t.Result), t.Season, t.Competition)
	}

	query := fmt.Sprintf(`
		INSERT INTO team_matches
			(week_date, team_role, team, opponent, team_score, opponent_score, result, season, competition)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert team_matches: %w", err)
	}
	return nil
}

// WriteStandings clears the standings table and batch-inserts the
// league-table rows.
func (pw *PostgresWriter) WriteStandings(records []models.StandingsRecord) error {
	if _, err := pw.db.Exec("DELETE FROM standings"); err != nil {
		return fmt.Errorf("postgres: clear standings: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertStandingsBatch(records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertStandingsBatch(batch []models.StandingsRecord) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*12)

	for idx, s := range batch {
		base := idx * 12
		placeholders := make([]string, 12)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			s.Team, s.Played, s.Won, s.Drawn, s.Lost, s.Points,
			s.GoalsFor, s.GoalsAgainst, s.Season, s.Position, s.GoalDiff, s.Competition)
	}

	query := fmt.Sprintf(`
		INSERT INTO standings
			(team, played, won, drawn, lost, points, goals_for, goals_against, season, position, goal_diff, competition)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert standings: %w", err)
	}
	return nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
