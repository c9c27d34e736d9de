// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dateresolve

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Month name lists, in calendar order, used to map a matched month name
// to its 1-12 index.
var (
	spanishMonths = []string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	englishMonths = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}
)

const (
	spanishMonthAlt = "enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre"
	englishMonthAlt = "january|february|march|april|may|june|july|august|september|october|november|december"
)

// textPattern is one date-shaped pattern plus the conversion of its
// capture groups to a calendar date.
type textPattern struct {
	re      *regexp.Regexp
	convert func(m []string) (time.Time, bool)
}

// textPatterns is the ordered pattern list for the content tier:
// Spanish month names, English month names, ISO, then day-first
// numeric forms. The first pattern whose match converts to a valid
// date wins.
var textPatterns = []textPattern{
	{
		// "15 de marzo de 2021"
		re:      regexp.MustCompile(`(?i)(\d{1,2})\s+de\s+(` + spanishMonthAlt + `)\s+de\s+(\d{4})`),
		convert: func(m []string) (time.Time, bool) { return monthNameDate(m[3], m[2], m[1], spanishMonths) },
	},
	{
		// "15 marzo 2021"
		re:      regexp.MustCompile(`(?i)(\d{1,2})\s+(` + spanishMonthAlt + `)\s+(\d{4})`),
		convert: func(m []string) (time.Time, bool) { return monthNameDate(m[3], m[2], m[1], spanishMonths) },
	},
	{
		// "15 march 2021"
		re:      regexp.MustCompile(`(?i)(\d{1,2})\s+(` + englishMonthAlt + `)\s+(\d{4})`),
		convert: func(m []string) (time.Time, bool) { return monthNameDate(m[3], m[2], m[1], englishMonths) },
	},
	{
		// "March 15, 2021"
		re:      regexp.MustCompile(`(?i)(` + englishMonthAlt + `)\s+(\d{1,2}),?\s+(\d{4})`),
		convert: func(m []string) (time.Time, bool) { return monthNameDate(m[3], m[1], m[2], englishMonths) },
	},
	{
		// "2021-03-15"
		re:      regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`),
		convert: func(m []string) (time.Time, bool) { return numericDate(m[1], m[2], m[3]) },
	},
	{
		// "15/3/2021", day first
		re:      regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),
		convert: func(m []string) (time.Time, bool) { return numericDate(m[3], m[2], m[1]) },
	},
	{
		// "15-3-2021", day first
		re:      regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`),
		convert: func(m []string) (time.Time, bool) { return numericDate(m[3], m[2], m[1]) },
	},
}

// extractTextDate finds the first date-shaped pattern in text that
// converts to a valid calendar date.
func extractTextDate(text string) (time.Time, bool) {
	for _, p := range textPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, ok := p.convert(m); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// monthNameDate builds a date from a year, a month name, and a day,
// mapping the name to its index in months.
func monthNameDate(year, monthName, day string, months []string) (time.Time, bool) {
	month := 0
	lower := strings.ToLower(monthName)
	for i, name := range months {
		if name == lower {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return time.Time{}, false
	}
	return calendarDate(year, month, day)
}

// numericDate builds a date from numeric year, month, and day strings.
func numericDate(year, month, day string) (time.Time, bool) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, false
	}
	return calendarDate(year, m, day)
}

// calendarDate validates day-of-month against the actual month length;
// time.Date normalizes overflow (e.g. Feb 30 → Mar 2), which must be
// rejected rather than silently shifted.
func calendarDate(year string, month int, day string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(month), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}
