// Package sleepday maps wall-clock times onto a canonical 24-hour axis
// anchored at 18:00, so a night spanning two calendar dates can be
// treated as one continuous interval. This is the only place where
// calendar dates and times of day interact.
package sleepday

import "github.com/cbti-tools/sleep-diary/internal/domain"

// Anchor is the pivot time of day. Any time at or after 18:00 belongs
// to the nominal date; anything earlier has rolled over to the next
// calendar date.
const Anchor = domain.ClockTime(18 * 60)

// Offset maps a time of day onto the sleep-day axis as minutes since
// 18:00 on the nominal date. The result is always in [0, 1440);
// Offset(18:00) == 0. Total over all clock values.
func Offset(t domain.ClockTime) int {
	m := int(t) - int(Anchor)
	if m < 0 {
		m += domain.MinutesPerDay
	}
	return m
}

// Minutes returns the signed distance from a to b on the sleep-day
// axis (b − a). Negative when b precedes a within the same night.
func Minutes(a, b domain.ClockTime) int {
	return Offset(b) - Offset(a)
}

// Before reports whether a precedes b on the sleep-day axis.
func Before(a, b domain.ClockTime) bool {
	return Offset(a) < Offset(b)
}

// CalendarDate resolves the calendar date a time of day falls on, given
// the nominal date of the night: the nominal date itself for times at
// or after the anchor, the next date otherwise.
func CalendarDate(nominal string, t domain.ClockTime) string {
	if t >= Anchor {
		return nominal
	}
	return domain.NextDate(nominal)
}

// IntervalMinutes returns the duration of an interval on the sleep-day
// axis, treating end-before-start as a wrap through the full day.
func IntervalMinutes(iv domain.Interval) int {
	d := Minutes(iv.Start, iv.End)
	if d < 0 {
		d += domain.MinutesPerDay
	}
	return d
}

// ClipMinutes returns the number of minutes of iv that fall within
// [lo, hi] on the sleep-day axis. Zero when the interval lies entirely
// outside the range.
func ClipMinutes(iv domain.Interval, lo, hi domain.ClockTime) int {
	start, end := Offset(iv.Start), Offset(iv.End)
	if end < start {
		end += domain.MinutesPerDay
	}
	lower, upper := Offset(lo), Offset(hi)
	if start < lower {
		start = lower
	}
	if end > upper {
		end = upper
	}
	if end <= start {
		return 0
	}
	return end - start
}
