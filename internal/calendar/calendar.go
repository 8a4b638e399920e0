// Package calendar provides the whole-day date arithmetic used by the
// reservation engine and the storage backends.
//
// A calendar date is represented as a time.Time at midnight UTC. Working in
// UTC keeps day differences exact regardless of daylight-saving transitions
// in the location the date was observed in.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the ISO-8601 date format used on the wire and in storage.
const Layout = "2006-01-02"

const hoursPerDay = 24

// Day returns the calendar date of t, keeping the year, month and day as
// observed in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now as observed in loc.
// A nil loc means UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(now.In(loc))
}

// AddDays returns the date n days after day.
func AddDays(day time.Time, n int) time.Time {
	return Day(day).AddDate(0, 0, n)
}

// AddMonths returns the date n months after day. When the target month is
// shorter the day is clamped to its last day, so Jan 31 plus one month is
// Feb 28 (or 29), never a date in March.
func AddMonths(day time.Time, n int) time.Time {
	y, m, d := Day(day).Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysBetween returns the number of whole days from a to b.
// The result is negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / hoursPerDay)
}

// Span returns every date from start to end inclusive, ascending.
// It returns nil when end precedes start.
func Span(start, end time.Time) []time.Time {
	n := DaysBetween(start, end)
	if n < 0 {
		return nil
	}
	days := make([]time.Time, 0, n+1)
	for i := 0; i <= n; i++ {
		days = append(days, AddDays(start, i))
	}
	return days
}

// Format renders day in Layout.
func Format(day time.Time) string {
	return Day(day).Format(Layout)
}

// Parse reads a date in Layout.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// ShiftOrder returns the indexes 0..n-1 in the order a contiguous run of n
// days starting at oldStart must be moved to start at newStart, so that no
// day is written onto a date still held by a later-moved day of the same run.
//
// Moving later rewrites the last day first; moving earlier (or not at all)
// rewrites the first day first.
func ShiftOrder(oldStart, newStart time.Time, n int) []int {
	order := make([]int, n)
	later := DaysBetween(oldStart, newStart) > 0
	for i := range order {
		if later {
			order[i] = n - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}
