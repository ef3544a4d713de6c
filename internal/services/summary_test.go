package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ritual-backend/internal/repos"
	"github.com/yungbote/ritual-backend/internal/testutil"
	"github.com/yungbote/ritual-backend/internal/types"
)

type summaryFixture struct {
	service  SummaryService
	habits   repos.HabitRepo
	weekDays repos.HabitWeekDayRepo
	records  repos.DayHabitRepo
}

func newSummaryFixture(t *testing.T) *summaryFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	habitRepo := repos.NewHabitRepo(db, log)
	weekDayRepo := repos.NewHabitWeekDayRepo(db, log)
	dayHabitRepo := repos.NewDayHabitRepo(db, log)
	return &summaryFixture{
		service:  NewSummaryService(db, log, habitRepo, dayHabitRepo),
		habits:   habitRepo,
		weekDays: weekDayRepo,
		records:  dayHabitRepo,
	}
}

// seedHabit inserts a habit with a controlled created_at, bypassing the
// service so history-dependent queries can be exercised.
func (f *summaryFixture) seedHabit(t *testing.T, created time.Time, weekDays ...int) *types.Habit {
	t.Helper()
	ctx := context.Background()
	habit := &types.Habit{
		ID:        uuid.New(),
		Title:     "seeded",
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := f.habits.Create(ctx, nil, habit); err != nil {
		t.Fatalf("seed habit: %v", err)
	}
	if err := f.weekDays.CreateMany(ctx, nil, habit.ID, weekDays); err != nil {
		t.Fatalf("seed recurrence: %v", err)
	}
	return habit
}

func (f *summaryFixture) seedRecord(t *testing.T, habitID uuid.UUID, day time.Time, value int) {
	t.Helper()
	if err := f.records.Create(context.Background(), nil, &types.DayHabit{
		ID:        uuid.New(),
		HabitID:   habitID,
		Day:       day,
		Value:     value,
		CreatedAt: day,
		UpdatedAt: day,
	}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func TestGetDayDetailsFiltersByWeekDay(t *testing.T) {
	f := newSummaryFixture(t)
	ctx := context.Background()

	mondayHabit := f.seedHabit(t, time.Date(2025, time.January, 1, 12, 0, 0, 0, time.Local), 1)
	monday := localDay(2025, time.January, 6)
	saturday := localDay(2025, time.January, 4)

	details, err := f.service.GetDayDetails(ctx, monday)
	if err != nil {
		t.Fatalf("GetDayDetails: %v", err)
	}
	if len(details.PossibleHabits) != 1 || details.PossibleHabits[0].ID != mondayHabit.ID {
		t.Fatalf("expected the Monday habit on a Monday, got %d habits", len(details.PossibleHabits))
	}

	details, err = f.service.GetDayDetails(ctx, saturday)
	if err != nil {
		t.Fatalf("GetDayDetails: %v", err)
	}
	if len(details.PossibleHabits) != 0 {
		t.Fatalf("expected no habits on a Saturday, got %d", len(details.PossibleHabits))
	}
	// Empty, not nil: the wire format needs [] rather than null.
	if details.PossibleHabits == nil || details.CompletedHabits == nil {
		t.Fatalf("expected empty slices, got nil")
	}
}

func TestGetDayDetailsIncludesSameDayCreation(t *testing.T) {
	f := newSummaryFixture(t)
	ctx := context.Background()

	// Created midday on the queried Monday: the created_at filter runs against
	// end of day, so the habit already shows up.
	habit := f.seedHabit(t, time.Date(2025, time.January, 6, 15, 0, 0, 0, time.Local), 1)

	details, err := f.service.GetDayDetails(ctx, localDay(2025, time.January, 6))
	if err != nil {
		t.Fatalf("GetDayDetails: %v", err)
	}
	if len(details.PossibleHabits) != 1 || details.PossibleHabits[0].ID != habit.ID {
		t.Fatalf("expected same-day habit listed, got %d habits", len(details.PossibleHabits))
	}
}

func TestGetDayDetailsDiscardsTimeOfDay(t *testing.T) {
	f := newSummaryFixture(t)
	ctx := context.Background()

	habit := f.seedHabit(t, localDay(2025, time.January, 1), 1)
	monday := localDay(2025, time.January, 6)
	f.seedRecord(t, habit.ID, monday, 1)

	details, err := f.service.GetDayDetails(ctx, monday.Add(18*time.Hour))
	if err != nil {
		t.Fatalf("GetDayDetails: %v", err)
	}
	if len(details.CompletedHabits) != 1 || details.CompletedHabits[0].HabitID != habit.ID {
		t.Fatalf("expected the midnight record found from an evening timestamp, got %d", len(details.CompletedHabits))
	}
}

func TestGetSummaryAmountIgnoresRecurrence(t *testing.T) {
	f := newSummaryFixture(t)
	ctx := context.Background()

	// first recurs only on Mondays, second only on Saturdays; amount must
	// count both anyway once both exist.
	first := f.seedHabit(t, localDay(2025, time.January, 1), 1)
	second := f.seedHabit(t, localDay(2025, time.January, 5), 6)

	day3 := localDay(2025, time.January, 3)
	day6 := localDay(2025, time.January, 6)
	f.seedRecord(t, first.ID, day3, 1)
	f.seedRecord(t, first.ID, day6, 1)
	f.seedRecord(t, second.ID, day6, 0)

	summary, err := f.service.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(summary))
	}
	if dayKey(summary[0].Day) != "2025-01-03" {
		t.Fatalf("expected rows ordered by day, first is %s", dayKey(summary[0].Day))
	}
	if summary[0].Completed != 1 || summary[0].Amount != 1 {
		t.Fatalf("day 3: expected completed=1 amount=1, got %+v", summary[0])
	}
	// Zero-valued record does not count as completed; amount is now 2.
	if summary[1].Completed != 1 || summary[1].Amount != 2 {
		t.Fatalf("day 6: expected completed=1 amount=2, got %+v", summary[1])
	}
}

func TestGetGlobalAnalyticsEmpty(t *testing.T) {
	f := newSummaryFixture(t)

	got, err := f.service.GetGlobalAnalytics(context.Background())
	if err != nil {
		t.Fatalf("GetGlobalAnalytics: %v", err)
	}
	if *got != (GlobalAnalytics{}) {
		t.Fatalf("expected zero analytics with no habits, got %+v", got)
	}
}
