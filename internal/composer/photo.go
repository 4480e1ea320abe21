package composer

import (
	"fmt"
	"strings"

	"github.com/jask/studybunny/internal/record"
)

// PhotoResult is what a photo picker hands back.
type PhotoResult struct {
	Cancelled bool
	URI       string
}

func (r PhotoResult) usable() bool {
	return !r.Cancelled && strings.TrimSpace(r.URI) != ""
}

// toggleColor selects c, or clears the selection when c is already selected.
func toggleColor(cur, c record.Color) (record.Color, error) {
	if !c.Valid() {
		return cur, fmt.Errorf("color %q is not in the palette", c)
	}
	if cur == c {
		return "", nil
	}
	return c, nil
}
