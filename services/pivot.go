package services

import (
	"hockey-scraper/models"
	"hockey-scraper/utils"
)

// Pivoter converts match-centric records into team-centric ones: every raw
// match becomes a mirror pair of records, one per team's perspective.
type Pivoter struct {
	logger *utils.Logger
}

// NewPivoter creates a Pivoter with the given logger.
func NewPivoter(logger *utils.Logger) *Pivoter {
	return &Pivoter{logger: logger}
}

// Pivot emits exactly two TeamMatchRecords per input match, Home
// perspective immediately followed by Away, in input order. Scores are
// copied into fresh values so the output never aliases the input rows.
func (p *Pivoter) Pivot(raws []models.RawMatchRecord) []models.TeamMatchRecord {
	out := make([]models.TeamMatchRecord, 0, 2*len(raws))

	for _, m := range raws {
		home := models.TeamMatchRecord{
			WeekDate:      m.WeekDate,
			Role:          models.RoleHome,
			Team:          m.HomeTeam,
			Opponent:      m.AwayTeam,
			TeamScore:     copyScore(m.HomeScore),
			OpponentScore: copyScore(m.AwayScore),
			Season:        m.Season,
			Competition:   m.Competition,
		}
		home.Result = Classify(home.TeamScore, home.OpponentScore)

		away := models.TeamMatchRecord{
			WeekDate:      m.WeekDate,
			Role:          models.RoleAway,
			Team:          m.AwayTeam,
			Opponent:      m.HomeTeam,
			TeamScore:     copyScore(m.AwayScore),
			OpponentScore: copyScore(m.HomeScore),
			Season:        m.Season,
			Competition:   m.Competition,
		}
		away.Result = Classify(away.TeamScore, away.OpponentScore)

		out = append(out, home, away)
	}

	p.logger.Info("[pivot] %d matches pivoted into %d team rows", len(raws), len(out))
	return out
}

// Classify derives the outcome from one team's perspective. A missing score
// on either side means the fixture has not been played — never a Draw, even
// though two absent scores would compare equal.
func Classify(teamScore, opponentScore *int) models.Result {
	if teamScore == nil || opponentScore == nil {
		return models.ResultUnplayed
	}
	switch {
	case *teamScore > *opponentScore:
		return models.ResultWin
	case *teamScore < *opponentScore:
		return models.ResultLoss
	default:
		return models.ResultDraw
	}
}

func copyScore(s *int) *int {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
