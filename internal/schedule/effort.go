package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

// MinDurationDays is the floor applied to every parsed effort count.
// It guarantees a strictly positive interval for every job, so timeline
// bars never collapse to zero width.
const MinDurationDays = 1.0

var numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseEffort extracts the paño count from a free-text cell like
// "3 aprox" or "2,5". The first numeric token found anywhere in the cell
// wins; surrounding words are ignored. ok is false when no number is
// present at all.
func ParseEffort(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", ".")
	tok := numberRe.FindString(s)
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DurationDays applies the defaulting policy: unparseable, zero or
// negative efforts all become exactly MinDurationDays.
func DurationDays(cell string) float64 {
	v, ok := ParseEffort(cell)
	if !ok || v < MinDurationDays {
		return MinDurationDays
	}
	return v
}
