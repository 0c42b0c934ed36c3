package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The shop writes promised dates two ways: numeric day-first ("21/01/2026",
// sometimes with dashes) or prose Spanish ("21 de enero de 2026").

var numericDateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
}

// proseDateRe matches "<day> de <month> de <year>", tolerating "del" and
// stray spacing. Matching is done on the lowercased cell.
var proseDateRe = regexp.MustCompile(`^(\d{1,2})\s+de\s+([a-záéíóúñü]+)\s+(?:de(?:l)?\s+)?(\d{4})$`)

var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September, // regional spelling
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// ParsePromisedDate resolves a promised-date cell to a calendar day
// (UTC midnight). ok is false when the cell is empty or unparseable,
// including prose dates with a month name outside the 12-entry table;
// callers anchor those at today.
func ParsePromisedDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range numericDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}

	m := proseDateRe.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := spanishMonths[m[2]]
	if !ok {
		// Some source drafts defaulted unknown months to January; that is
		// almost certainly a bug, so an unknown month fails the parse and
		// the record falls back to the today anchor instead.
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// DateOnly truncates t to UTC midnight, the naive-calendar-date form all
// schedule math runs on.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
