package englandhockey

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"hockey-scraper/models"
	"hockey-scraper/utils"
)

// FindSelectedDate returns the date (YYYY-MM-DD) pre-selected in the
// date-picker timeline on first load. The site marks it with a shifting
// combination of classes, so a ladder of selectors is tried in order of
// specificity; as a last resort any time[datetime] on the page is used,
// and failing that today's date.
func FindSelectedDate(doc *goquery.Document) string {
	selectors := []string{
		".c-date-picker-timeline__item.is-initial-selected.is-selected",
		".c-date-picker-timeline__item.is-initial-selected",
		".c-date-picker-timeline__item-inner.is-selected",
		".c-date-picker-timeline__item.is-selected",
	}

	for _, sel := range selectors {
		if date := firstDatetime(doc.Find(sel)); date != "" {
			return date
		}
	}

	if date := firstDatetime(doc.Selection); date != "" {
		return date
	}

	return time.Now().Format("2006-01-02")
}

// DiscoverDates enumerates the navigable match days in the timeline, in DOM
// order. A day whose date is already in the visited set is skipped, as is
// any duplicate within the same call, so repeated discovery over
// overlapping pages never re-reports a processed day. Pages without
// navigation controls yield an empty slice.
func DiscoverDates(doc *goquery.Document, season string, visited *utils.VisitedSet) []models.MatchDay {
	var days []models.MatchDay
	local := make(map[string]struct{})

	doc.Find(".c-date-picker-timeline__item").Each(func(_ int, item *goquery.Selection) {
		button := item.Find(".js-fixture-date").First()
		if button.Length() == 0 {
			return
		}
		navID, ok := button.Attr("id")
		if !ok || navID == "" {
			return
		}

		date := extractDate(button.Find("time").First())
		if date == "" {
			return
		}

		key := dayKey(season, date)
		if visited.Contains(key) {
			return
		}
		if _, dup := local[key]; dup {
			return
		}
		local[key] = struct{}{}

		days = append(days, models.MatchDay{Season: season, Date: date, NavID: navID})
	})

	return days
}

// dayKey is the visited-set key for one match day.
func dayKey(season, date string) string {
	return season + "_" + date
}

func firstDatetime(sel *goquery.Selection) string {
	date := ""
	sel.Find("time[datetime]").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if d := extractDate(t); d != "" {
			date = d
			return false
		}
		return true
	})
	return date
}

// extractDate reads a time element's datetime attribute and strips any
// time-of-day component.
func extractDate(t *goquery.Selection) string {
	attr, ok := t.Attr("datetime")
	if !ok {
		return ""
	}
	if i := strings.Index(attr, "T"); i >= 0 {
		attr = attr[:i]
	}
	return strings.TrimSpace(attr)
}
