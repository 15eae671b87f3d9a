package englandhockey

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"hockey-scraper/config"
	"hockey-scraper/models"
	"hockey-scraper/utils"
)

// renderer is the contract the orchestrator needs from a browser session:
// load a URL, wait for readiness, hand back the DOM snapshot.
type renderer interface {
	Render(url, waitSelector string) (string, error)
}

// Scraper drives page rendering, date discovery and extraction across the
// configured seasons. Page loads within a season are strictly sequential;
// seasons may run in parallel, each with its own browser session.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	seasons []models.Season
}

// New creates a ready-to-use Scraper for the given seasons.
func New(cfg *config.Config, logger *utils.Logger, seasons []models.Season) *Scraper {
	return &Scraper{cfg: cfg, logger: logger, seasons: seasons}
}

// Run scrapes every configured season and returns one SeasonResult per
// season, in configured order regardless of completion order. A season that
// cannot load its first page is reported FAILED with zero records; the
// other seasons are unaffected.
func (s *Scraper) Run() []models.SeasonResult {
	results := make([]models.SeasonResult, len(s.seasons))

	if s.cfg.SeasonConcurrency > 1 {
		pool := utils.NewWorkerPool(s.cfg.SeasonConcurrency)
		for i, season := range s.seasons {
			i, season := i, season
			pool.Submit(func() {
				session := NewSession(s.cfg, s.logger)
				defer session.Close()
				results[i] = s.scrapeSeason(session, season)
			})
		}
		pool.Wait()
		return results
	}

	session := NewSession(s.cfg, s.logger)
	defer session.Close()

	for i, season := range s.seasons {
		results[i] = s.scrapeSeason(session, season)
	}
	return results
}

// scrapeSeason walks one season through its states: load the first fixtures
// page, discover match days, load and extract each unvisited day, then
// scrape the league table once.
func (s *Scraper) scrapeSeason(session renderer, season models.Season) models.SeasonResult {
	res := models.SeasonResult{Season: season.Name, Status: models.SeasonFailed}

	retry := &utils.RetryConfig{
		MaxAttempts: s.cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      s.logger,
	}
	visited := utils.NewVisitedSet()
	seenMatches := utils.NewVisitedSet()

	s.logger.Info("[scrape] Season %s: loading first fixtures page", season.Name)

	doc, err := s.renderDoc(session, retry, "first-page "+season.Name, s.fixturesURL(season, ""), "")
	if err != nil {
		// No baseline page to discover dates from.
		s.logger.Error("[scrape] Season %s failed: %v", season.Name, err)
		return res
	}

	selected := FindSelectedDate(doc)
	visited.Add(dayKey(season.Name, selected))
	s.collectMatches(doc, season.Name, selected, seenMatches, &res)
	res.DatesVisited++

	days := DiscoverDates(doc, season.Name, visited)
	s.logger.Info("[scrape] Season %s: initially selected %s, %d further match days found",
		season.Name, selected, len(days))

	// The queue may grow: each day's page can reveal timeline entries the
	// first page did not show, and the visited set keeps the walk finite.
	for i := 0; i < len(days); i++ {
		day := days[i]
		if !visited.Add(dayKey(day.Season, day.Date)) {
			continue
		}

		dayDoc, err := s.renderDoc(session, retry,
			fmt.Sprintf("match-day %s %s", season.Name, day.Date),
			s.fixturesURL(season, day.NavID), "")
		if err != nil {
			s.logger.Warn("[scrape] Season %s: skipping date %s: %v", season.Name, day.Date, err)
			res.DatesSkipped++
			continue
		}

		s.collectMatches(dayDoc, season.Name, day.Date, seenMatches, &res)
		res.DatesVisited++

		days = append(days, DiscoverDates(dayDoc, season.Name, visited)...)
	}

	s.scrapeStandings(session, retry, season, &res)

	res.Status = models.SeasonDone
	s.logger.Info("[scrape] Season %s done: %d matches across %d dates (%d skipped, %d rows dropped)",
		season.Name, len(res.Matches), res.DatesVisited, res.DatesSkipped, res.RowsDropped)
	return res
}

// scrapeStandings loads the league table page for the season. A failure
// here degrades the season to matches-only output rather than failing it.
func (s *Scraper) scrapeStandings(session renderer, retry *utils.RetryConfig, season models.Season, res *models.SeasonResult) {
	doc, err := s.renderDoc(session, retry, "table "+season.Name, s.tableURL(season), "table")
	if err != nil {
		s.logger.Warn("[scrape] Season %s: league table page failed: %v", season.Name, err)
		return
	}

	standings, dropped, err := ExtractStandings(doc, season.Name)
	if err != nil {
		s.logger.Warn("[scrape] Season %s: %v", season.Name, err)
		return
	}

	res.Standings = append(res.Standings, standings...)
	res.RowsDropped += dropped
	if dropped > 0 {
		s.logger.Warn("[scrape] Season %s: dropped %d malformed standings rows", season.Name, dropped)
	}
	s.logger.Info("[scrape] Season %s: %d standings rows", season.Name, len(standings))
}

// collectMatches extracts the fixtures on a rendered page and appends the
// ones not already seen this run. The same fixture list is often rendered
// on several match-day pages around the selected date, so matches dedupe on
// (season, date, home, away).
func (s *Scraper) collectMatches(doc *goquery.Document, season, weekDate string, seen *utils.VisitedSet, res *models.SeasonResult) {
	matches, dropped := ExtractMatches(doc, season, weekDate)
	res.RowsDropped += dropped
	if dropped > 0 {
		s.logger.Warn("[scrape] Season %s %s: dropped %d incomplete fixture cards", season, weekDate, dropped)
	}

	added := 0
	for _, m := range matches {
		if !seen.Add(matchKey(m)) {
			s.logger.Debug("[scrape] Duplicate fixture skipped: %s vs %s on %s", m.HomeTeam, m.AwayTeam, m.WeekDate)
			continue
		}
		res.Matches = append(res.Matches, m)
		added++
	}

	s.logger.Debug("[scrape] Season %s %s: %d new matches", season, weekDate, added)
}

// renderDoc loads a page through the retry budget and parses the snapshot.
func (s *Scraper) renderDoc(session renderer, retry *utils.RetryConfig, op, url, waitSelector string) (*goquery.Document, error) {
	var doc *goquery.Document
	err := retry.Do(op, func() error {
		html, err := session.Render(url, waitSelector)
		if err != nil {
			return err
		}
		d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return fmt.Errorf("parse snapshot: %w", err)
		}
		doc = d
		return nil
	})
	return doc, err
}

func (s *Scraper) fixturesURL(season models.Season, navID string) string {
	url := fmt.Sprintf("%s/%s?season=%s&competition-group=%s&competition=%s",
		config.BaseURL, config.FixturesPath,
		season.SeasonID, season.CompetitionGroupID, season.CompetitionID)
	if navID != "" {
		url += "&match-day=" + navID
	}
	return url
}

func (s *Scraper) tableURL(season models.Season) string {
	return fmt.Sprintf("%s/%s?season=%s&competition-group=%s&competition=%s",
		config.BaseURL, config.TablePath,
		season.SeasonID, season.CompetitionGroupID, season.CompetitionID)
}

func matchKey(m models.RawMatchRecord) string {
	return m.Season + "_" + m.WeekDate + "_" + m.HomeTeam + "_vs_" + m.AwayTeam
}
