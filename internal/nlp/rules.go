package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// whitespaceRegex matches one or more whitespace characters.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// cleanTitle collapses internal whitespace to single spaces and trims the ends.
// Called after every removal so residual titles never carry doubled spaces.
func cleanTitle(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// rule recognizes one lexical convention in a title. On a match it records the
// derived value on out, removes the matched span, and returns the residual
// title. On no match it returns the title untouched. Rules must be idempotent
// on their own residual output.
type rule interface {
	apply(title string, now time.Time, out *ParsedTask) string
}

// at9AM resolves t's calendar date to 09:00:00 UTC as a Unix timestamp.
// Time-of-day parsing is deliberately not supported.
func at9AM(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 9, 0, 0, 0, time.UTC).Unix()
}

// contextRule extracts a single "@word" marker as the task context.
var contextRegex = regexp.MustCompile(`@(\w+)`)

type contextRule struct{}

func (contextRule) apply(title string, _ time.Time, out *ParsedTask) string {
	m := contextRegex.FindStringSubmatchIndex(title)
	if m == nil {
		return title
	}
	// Captured word kept verbatim, casing preserved
	context := title[m[2]:m[3]]
	out.Context = &context
	return cleanTitle(title[:m[0]] + title[m[1]:])
}

// tomorrowRule matches the standalone word "tomorrow" and schedules for the
// next calendar day.
var tomorrowRegex = regexp.MustCompile(`(?i)\btomorrow\b`)

type tomorrowRule struct{}

func (tomorrowRule) apply(title string, now time.Time, out *ParsedTask) string {
	m := tomorrowRegex.FindStringIndex(title)
	if m == nil {
		return title
	}
	scheduled := at9AM(now.AddDate(0, 0, 1))
	out.ScheduledFor = &scheduled
	return cleanTitle(title[:m[0]] + title[m[1]:])
}

// inDaysRule matches "in N days" (or "in N day") and schedules N calendar
// days out. An unparsable integer is treated as a non-match, not an error.
var inDaysRegex = regexp.MustCompile(`(?i)\bin (\d+) days?\b`)

type inDaysRule struct{}

func (inDaysRule) apply(title string, now time.Time, out *ParsedTask) string {
	m := inDaysRegex.FindStringSubmatchIndex(title)
	if m == nil {
		return title
	}
	days, err := strconv.Atoi(title[m[2]:m[3]])
	if err != nil {
		return title
	}
	scheduled := at9AM(now.AddDate(0, 0, days))
	out.ScheduledFor = &scheduled
	return cleanTitle(title[:m[0]] + title[m[1]:])
}

// weekdaySearchBound caps the forward scan when resolving "next <weekday>".
// Any weekday is reachable within 7 days; the bound guards against a logic
// defect, not a real calendar situation.
const weekdaySearchBound = 14

// weekdayNames enumerates weekday names in match-priority order. Only the
// first name that matches is applied per input.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// nextWeekdayRegexes holds one precompiled "next <weekday>" pattern per name.
var nextWeekdayRegexes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(weekdayNames))
	for i, w := range weekdayNames {
		res[i] = regexp.MustCompile(fmt.Sprintf(`(?i)\bnext %s\b`, w.name))
	}
	return res
}()

// nextWeekdayRule matches "next <weekday>" and schedules the next calendar
// date with that weekday, scanning forward from now (exclusive of today).
type nextWeekdayRule struct{}

func (nextWeekdayRule) apply(title string, now time.Time, out *ParsedTask) string {
	for i, w := range weekdayNames {
		re := nextWeekdayRegexes[i]
		m := re.FindStringIndex(title)
		if m == nil {
			continue
		}

		scheduled, ok := nextOccurrence(now, w.day)
		if !ok {
			return title
		}
		out.ScheduledFor = &scheduled
		return cleanTitle(title[:m[0]] + title[m[1]:])
	}
	return title
}

// nextOccurrence finds the next calendar date whose weekday equals target,
// starting the day after now. Returns false if the search bound is exceeded.
func nextOccurrence(now time.Time, target time.Weekday) (int64, bool) {
	for i := 1; i <= weekdaySearchBound; i++ {
		candidate := now.AddDate(0, 0, i)
		if candidate.Weekday() == target {
			return at9AM(candidate), true
		}
	}
	return 0, false
}
