package englandhockey

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hockey-scraper/models"
)

// ErrNoTable reports a standings page without a league table element.
var ErrNoTable = errors.New("no league table found in page")

const defaultCompetition = "London Women's Premier Division"

// ExtractCompetition reads the competition title from the page ribbon.
func ExtractCompetition(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find(".c-ribbon__title").First().Text())
	if title == "" {
		return defaultCompetition
	}
	return title
}

// ExtractMatches parses the fixture cards out of a rendered snapshot into
// raw match records for the given season and week date. Parsing is driven
// by tags and classes, never by text position, so minor markup reordering
// is tolerated. Fixtures that have not been played keep nil scores — an
// explicit zero is a real result. Cards missing a team name are dropped;
// the second return value counts them.
func ExtractMatches(doc *goquery.Document, season, weekDate string) ([]models.RawMatchRecord, int) {
	competition := ExtractCompetition(doc)

	containers := doc.Find(".c-match-detail-card__container")
	if containers.Length() == 0 {
		containers = doc.Find(".c-fixture")
	}

	var matches []models.RawMatchRecord
	dropped := 0

	containers.Each(func(_ int, card *goquery.Selection) {
		home := badgeLabel(card, ".c-fixture__badge-before")
		away := badgeLabel(card, ".c-fixture__badge-after")

		if home == "" && away == "" {
			return
		}
		if home == "" || away == "" || home == away {
			dropped++
			return
		}

		rec := models.RawMatchRecord{
			WeekDate:    weekDate,
			HomeTeam:    home,
			AwayTeam:    away,
			Season:      season,
			Competition: competition,
		}

		body := card.Find(".c-fixture__body").First()
		if body.Length() == 0 {
			body = card.Find(".c-fixture__info").First()
		}

		if body.Length() > 0 {
			rec.HomeScore, rec.AwayScore = extractScores(body)
			if rec.HomeScore == nil || rec.AwayScore == nil {
				// Unplayed fixture: a kickoff time instead of a score.
				rec.HomeScore, rec.AwayScore = nil, nil
				rec.Kickoff = strings.TrimSpace(body.Find(".c-fixture__time").First().Text())
			}
		}

		rec.Location = strings.TrimSpace(card.Find(".c-fixture__location span").First().Text())

		matches = append(matches, rec)
	})

	return matches, dropped
}

// extractScores reads the home and away scores from a fixture body. Past
// matches carry either a score board with per-team items or a single
// "H - A" score element.
func extractScores(body *goquery.Selection) (*int, *int) {
	board := body.Find(".c-fixture__score-board").First()
	if board.Length() > 0 {
		items := board.Find(".c-score__item")
		if items.Length() >= 2 {
			return parseScore(items.Eq(0).Text()), parseScore(items.Eq(1).Text())
		}
	}

	score := body.Find(".c-fixture__score").First()
	if score.Length() > 0 {
		parts := strings.SplitN(score.Text(), "-", 2)
		if len(parts) == 2 {
			return parseScore(parts[0]), parseScore(parts[1])
		}
	}

	return nil, nil
}

// ExtractStandings parses the league table out of a rendered snapshot. Rows
// missing a team name or the expected cell count are dropped and counted.
func ExtractStandings(doc *goquery.Document, season string) ([]models.StandingsRecord, int, error) {
	competition := ExtractCompetition(doc)

	table := doc.Find(".c-table-container table").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, 0, ErrNoTable
	}

	var standings []models.StandingsRecord
	dropped := 0

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 8 {
			dropped++
			return
		}

		teamCell := tds.Eq(1)
		team := strings.TrimSpace(teamCell.Find("a").First().Text())
		if team == "" {
			team = strings.TrimSpace(teamCell.Text())
		}
		if team == "" {
			dropped++
			return
		}

		rec := models.StandingsRecord{
			Position:     parseCount(tds.Eq(0).Text()),
			Team:         team,
			Played:       parseCount(tds.Eq(2).Text()),
			Won:          parseCount(tds.Eq(3).Text()),
			Drawn:        parseCount(tds.Eq(4).Text()),
			Lost:         parseCount(tds.Eq(5).Text()),
			GoalsFor:     parseCount(tds.Eq(6).Text()),
			GoalsAgainst: parseCount(tds.Eq(7).Text()),
			Season:       season,
			Competition:  competition,
		}
		if tds.Length() > 8 {
			rec.GoalDiff = parseCount(tds.Eq(8).Text())
		}
		if tds.Length() > 9 {
			// Points are usually wrapped in a <b> tag.
			pts := strings.TrimSpace(tds.Eq(9).Find("b").First().Text())
			if pts == "" {
				pts = tds.Eq(9).Text()
			}
			rec.Points = parseCount(pts)
		}

		standings = append(standings, rec)
	})

	return standings, dropped, nil
}

// parseScore converts a score cell to a number, nil when the text is not a
// plain integer (blank cells, postponement markers).
func parseScore(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func badgeLabel(card *goquery.Selection, badgeClass string) string {
	return strings.TrimSpace(card.Find(badgeClass + " .c-badge__label").First().Text())
}
