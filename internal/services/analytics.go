package services

import (
	"math"
	"time"

	"github.com/yungbote/ritual-backend/internal/repos"
	"github.com/yungbote/ritual-backend/internal/types"
)

// computeGlobalAnalytics walks the calendar from the earliest habit's creation
// day through today. A day is fully completed when the number of records with
// value > 0 equals the number of habits scheduled on that weekday and created
// by that day's midnight. A day with nothing scheduled satisfies the equality
// vacuously, so rest days extend a streak rather than break it.
//
// The streak walk starts at today: an in-progress, not-yet-completed today
// reports streak 0 instead of carrying yesterday's run.
func computeGlobalAnalytics(habits []*types.Habit, counts []repos.DayCompletedRow, today time.Time) GlobalAnalytics {
	if len(habits) == 0 {
		return GlobalAnalytics{}
	}

	completedByDay := make(map[string]int, len(counts))
	for _, row := range counts {
		completedByDay[dayKey(row.Day)] = row.Completed
	}

	start := startOfDay(habits[0].CreatedAt)
	for _, habit := range habits[1:] {
		if habitStart := startOfDay(habit.CreatedAt); habitStart.Before(start) {
			start = habitStart
		}
	}
	if start.After(today) {
		return GlobalAnalytics{}
	}

	totalDays := 0
	completedDays := 0
	fullyCompleted := map[string]bool{}
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		totalDays++
		if completedByDay[dayKey(day)] == scheduledCount(habits, day) {
			completedDays++
			fullyCompleted[dayKey(day)] = true
		}
	}

	globalCompletion := 0
	if totalDays > 0 {
		globalCompletion = int(math.Round(float64(completedDays) / float64(totalDays) * 100))
	}

	streak := 0
	for day := today; !day.Before(start) && fullyCompleted[dayKey(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}

	return GlobalAnalytics{
		TotalDaysTracked:   totalDays,
		CompletedDaysCount: completedDays,
		GlobalCompletion:   globalCompletion,
		Streak:             streak,
	}
}

// scheduledCount counts habits whose recurrence includes day's weekday and
// whose created_at is on or before day's midnight. Unlike day resolution this
// uses the midnight bound, matching the heatmap's amount filter.
func scheduledCount(habits []*types.Habit, day time.Time) int {
	weekDay := int(day.Weekday())
	n := 0
	for _, habit := range habits {
		if habit.CreatedAt.After(day) {
			continue
		}
		for _, entry := range habit.WeekDays {
			if entry.WeekDay == weekDay {
				n++
				break
			}
		}
	}
	return n
}
