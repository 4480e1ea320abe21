package listview

import (
	"fmt"
	"time"
)

// DefaultHeaderLayout renders a day as "Sep 1".
const DefaultHeaderLayout = "Jan 2"

// HeaderDate renders a YYYY-MM-DD day for the list header.
func HeaderDate(iso, layout string) string {
	if layout == "" {
		layout = DefaultHeaderLayout
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format(layout)
}

// Clock12 turns "18:05" into "6:05 PM". An empty time reads as noon.
func Clock12(hhmm string) string {
	if hhmm == "" {
		return "12:00 PM"
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}

// DueLine is the "Until" text of a homework row: DD/MM/YYYY h:mm PM.
func DueLine(iso, hhmm string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return fmt.Sprintf("%s %s", iso, Clock12(hhmm))
	}
	return fmt.Sprintf("%s %s", t.Format("02/01/2006"), Clock12(hhmm))
}
