package composer

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestDistance = 2

// Choice is a pick-or-create field: a fixed option list the user can filter
// by typing, pick from, or extend with the typed text.
type Choice struct {
	options  []string
	text     string
	selected string
	picked   bool
}

// NewChoice copies options. A non-empty current value is selected and
// appended to the options when it is not one of them.
func NewChoice(options []string, current string) *Choice {
	c := &Choice{options: append([]string(nil), options...)}
	if v := strings.TrimSpace(current); v != "" {
		if !c.has(v) {
			c.options = append(c.options, v)
		}
		c.text, c.selected, c.picked = v, v, true
	}
	return c
}

func (c *Choice) has(v string) bool {
	for _, o := range c.options {
		if o == v {
			return true
		}
	}
	return false
}

func (c *Choice) Options() []string { return append([]string(nil), c.options...) }
func (c *Choice) Text() string      { return c.text }

// Selected returns the picked option.
func (c *Choice) Selected() (string, bool) { return c.selected, c.picked }

// SetText replaces the typed text and drops the selection.
func (c *Choice) SetText(text string) {
	c.text = text
	c.selected, c.picked = "", false
}

// Pick selects an existing option and mirrors it into the text.
func (c *Choice) Pick(option string) error {
	if !c.has(option) {
		return fmt.Errorf("unknown option %q", option)
	}
	c.text, c.selected, c.picked = option, option, true
	return nil
}

// Filtered lists options containing the typed text, case-insensitive.
func (c *Choice) Filtered() []string {
	q := strings.ToLower(strings.TrimSpace(c.text))
	if q == "" {
		return c.Options()
	}
	var out []string
	for _, o := range c.options {
		if strings.Contains(strings.ToLower(o), q) {
			out = append(out, o)
		}
	}
	return out
}

// CanCreate reports whether the trimmed text is new and non-empty.
func (c *Choice) CanCreate() bool {
	t := strings.TrimSpace(c.text)
	return t != "" && !c.has(t)
}

// Create appends the trimmed text as an option and selects it.
func (c *Choice) Create() (string, bool) {
	if !c.CanCreate() {
		return "", false
	}
	t := strings.TrimSpace(c.text)
	c.options = append(c.options, t)
	c.text, c.selected, c.picked = t, t, true
	return t, true
}

// Suggest returns the closest existing option to a text that would create a
// new one, when it is within a couple of typos.
func (c *Choice) Suggest() (string, bool) {
	if !c.CanCreate() {
		return "", false
	}
	t := strings.ToLower(strings.TrimSpace(c.text))
	best, bestDist := "", maxSuggestDistance+1
	for _, o := range c.options {
		d := levenshtein.ComputeDistance(t, strings.ToLower(o))
		if d < bestDist {
			best, bestDist = o, d
		}
	}
	if best == "" || bestDist >= len([]rune(t)) {
		return "", false
	}
	return best, true
}
