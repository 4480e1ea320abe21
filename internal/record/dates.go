package record

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	isoLayout     = "2006-01-02"
	displayLayout = "02.01.06"
)

var (
	displayRegex = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{2}$`)
	timeRegex    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// DisplayDate turns a calendar pick (YYYY-MM-DD) into the stored DD.MM.YY form.
// Two-digit years read back as 20yy, so only 2000 through 2099 are accepted.
func DisplayDate(iso string) (string, error) {
	t, err := time.Parse(isoLayout, strings.TrimSpace(iso))
	if err != nil {
		return "", fmt.Errorf("parse calendar date %q: %w", iso, err)
	}
	if y := t.Year(); y < 2000 || y > 2099 {
		return "", fmt.Errorf("calendar date %q: year %d is outside 2000-2099", iso, y)
	}
	return t.Format(displayLayout), nil
}

// ISODate derives dateISO from a DD.MM.YY date: "20" + yy + "-" + mm + "-" + dd.
func ISODate(display string) (string, error) {
	if !displayRegex.MatchString(display) {
		return "", fmt.Errorf("date %q is not DD.MM.YY", display)
	}
	parts := strings.Split(display, ".")
	dd, mm, yy := parts[0], parts[1], parts[2]
	iso := "20" + yy + "-" + mm + "-" + dd
	if _, err := time.Parse(isoLayout, iso); err != nil {
		return "", fmt.Errorf("date %q is not a calendar day: %w", display, err)
	}
	return iso, nil
}

// ValidISODate reports whether s is a YYYY-MM-DD calendar day.
func ValidISODate(s string) bool {
	_, err := time.Parse(isoLayout, s)
	return err == nil
}

// ValidTime reports whether s is a 24h HH:mm time with a two-digit hour.
func ValidTime(s string) bool {
	return timeRegex.MatchString(s)
}

// Today returns the current calendar day in loc as YYYY-MM-DD.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(isoLayout)
}

// AddDays shifts a YYYY-MM-DD day by n days.
func AddDays(iso string, n int) (string, error) {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", iso, err)
	}
	return t.AddDate(0, 0, n).Format(isoLayout), nil
}

// NewID returns a time-ordered identifier for a new record.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
