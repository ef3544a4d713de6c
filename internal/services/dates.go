package services

import "time"

// startOfDay truncates to local midnight. All day_habit.day comparisons go
// through this value, never through raw timestamps.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay is the last instant of t's calendar day. The habit created_at
// filter uses this looser bound so a habit created later the same day still
// shows up in that day's resolution.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func dayKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
