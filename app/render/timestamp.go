package render

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // Europe/Sofia must resolve on hosts without zoneinfo

	"github.com/araddon/dateparse"
)

var sofia = mustLoadLocation("Europe/Sofia")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("load location %s: %v", name, err))
	}
	return loc
}

var months = [...]string{
	time.January:   "януари",
	time.February:  "февруари",
	time.March:     "март",
	time.April:     "април",
	time.May:       "май",
	time.June:      "юни",
	time.July:      "юли",
	time.August:    "август",
	time.September: "септември",
	time.October:   "октомври",
	time.November:  "ноември",
	time.December:  "декември",
}

// ParseTimestamp parses a publication timestamp. Values without a zone
// are taken as UTC.
func ParseTimestamp(published string) (time.Time, error) {
	published = strings.TrimSpace(published)
	if published == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	t, err := dateparse.ParseIn(published, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", published, err)
	}
	return t, nil
}

// FormatTimestamp formats the publication time in Sofia time with the
// Bulgarian long month name and a 24-hour clock, e.g. "2 януари 2024 г., 12:00".
// Unparseable values are returned as is.
func FormatTimestamp(published string) string {
	t, err := ParseTimestamp(published)
	if err != nil {
		return published
	}
	return formatTime(t)
}

func formatTime(t time.Time) string {
	t = t.In(sofia)
	return fmt.Sprintf("%d %s %d г., %s", t.Day(), months[t.Month()], t.Year(), t.Format("15:04"))
}
