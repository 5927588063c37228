// Package nlp turns a free-form capture line into a task title plus optional
// metadata. A fixed-order chain of extraction rules is run over the input;
// each rule strips its matched text and the residual feeds the next rule.
// The phrase set is small and non-overlapping by construction, so an ordered
// rule list is used instead of a grammar.
package nlp

import "time"

// ParsedTask is the result of parsing one capture line.
type ParsedTask struct {
	// Title is the input with all matched markers stripped and whitespace
	// normalized. May be empty if the input was entirely markers.
	Title string

	// Context is the @word marker, verbatim as captured (nullable)
	Context *string

	// ScheduledFor is the resolved Unix timestamp, always at 09:00:00 UTC
	// on the target calendar date (nullable)
	ScheduledFor *int64
}

// pipeline applies rules in this fixed order. Order matters: later rules
// re-derive from the residual title left by earlier rules, and a later
// scheduling match overwrites an earlier one (last-match-wins, by design
// rather than validation).
var pipeline = []rule{
	contextRule{},
	tomorrowRule{},
	inDaysRule{},
	nextWeekdayRule{},
}

// Parse extracts a title, optional context, and optional scheduled timestamp
// from a capture line. It is a total function: input with no recognized
// phrases yields the trimmed input as title and nothing else.
func Parse(input string) ParsedTask {
	return ParseAt(input, time.Now().UTC())
}

// ParseAt is Parse with an explicit reference time for relative dates.
func ParseAt(input string, now time.Time) ParsedTask {
	parsed := ParsedTask{}

	title := cleanTitle(input)
	for _, r := range pipeline {
		title = r.apply(title, now, &parsed)
	}
	parsed.Title = title

	return parsed
}
