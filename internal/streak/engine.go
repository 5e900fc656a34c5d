// Package streak implements the login-streak computation. All functions are
// pure and operate on calendar dates: timestamps are truncated to UTC
// midnight before comparison, so the result does not depend on the
// time of day a request arrives.
package streak

import "time"

// DateOf normalizes a timestamp to its calendar date, midnight UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute whole-calendar-day difference between two
// timestamps. Both arguments are normalized first, so partial days never
// round.
func DaysBetween(a, b time.Time) int {
	diff := int(DateOf(a).Sub(DateOf(b)).Hours() / 24)
	if diff < 0 {
		return -diff
	}
	return diff
}

// ComputeLoginUpdate returns the streak and last-login date after a
// successful authentication at now.
//
// A first-ever login starts the streak at 1. A repeated login on the same
// calendar day leaves the streak unchanged. A login exactly one day after
// the previous one extends the streak. Any larger gap, in either direction,
// restarts it at 1.
func ComputeLoginUpdate(now time.Time, priorStreak int, priorLast *time.Time) (int, time.Time) {
	today := DateOf(now)
	if priorLast == nil {
		return 1, today
	}

	switch DaysBetween(now, *priorLast) {
	case 0:
		return priorStreak, today
	case 1:
		return priorStreak + 1, today
	default:
		return 1, today
	}
}

// ShouldDecay reports whether the reconciliation sweep must zero a user's
// streak: the user never logged in, or the last login is neither today nor
// yesterday. A last login in the future (clock skew) decays too.
func ShouldDecay(now time.Time, lastLogin *time.Time) bool {
	if lastLogin == nil {
		return true
	}
	today := DateOf(now)
	last := DateOf(*lastLogin)
	yesterday := today.AddDate(0, 0, -1)
	return !last.Equal(today) && !last.Equal(yesterday)
}
