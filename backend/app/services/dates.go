package services

import (
	"sort"
	"strings"
	"time"
)

const maxEditors = 5

// Input dates arrive either as date-only strings or full ISO timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// normalizeDoneDate parses a single date token and pins it to 12:00 UTC.
// Noon keeps the calendar day stable across timezone boundaries when dates
// are compared later.
func normalizeDoneDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.UTC()
		noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
		return noon.Format(time.RFC3339), true
	}
	return "", false
}

// parseDoneDates splits a comma-separated date list, silently dropping
// entries that do not parse, and returns the normalized set newest first.
// The descending order is the canonical form of the stored history.
func parseDoneDates(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{}
	}
	out := []string{}
	for _, part := range strings.Split(csv, ",") {
		if norm, ok := normalizeDoneDate(part); ok {
			out = append(out, norm)
		}
	}
	// Normalized RFC3339 UTC strings sort chronologically as plain strings.
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// withinLastYear reports whether the stored timestamp falls inside the
// trailing year, using calendar year subtraction rather than a strict
// 365-day count. Both the write path and the stats read path go through
// this one function so the two derivations cannot drift.
func withinLastYear(iso string, now time.Time) bool {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return false
	}
	return !t.Before(now.AddDate(-1, 0, 0))
}

func anyWithinLastYear(dates []string, now time.Time) bool {
	for _, d := range dates {
		if withinLastYear(d, now) {
			return true
		}
	}
	return false
}

// promoteEditor moves username to the front of the recent-editors list,
// removing any earlier occurrence and truncating to maxEditors. A username
// already at the front leaves the list untouched.
func promoteEditor(editors []string, username string) []string {
	if len(editors) > 0 && editors[0] == username {
		return editors
	}
	out := []string{username}
	for _, e := range editors {
		if e != username {
			out = append(out, e)
		}
	}
	if len(out) > maxEditors {
		out = out[:maxEditors]
	}
	return out
}
