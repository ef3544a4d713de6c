package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/ritual-backend/internal/logger"
	"github.com/yungbote/ritual-backend/internal/repos"
	"github.com/yungbote/ritual-backend/internal/types"
)

// DayDetails is the per-day breakdown: the habits scheduled for the day and
// the completion records that exist for it.
type DayDetails struct {
	PossibleHabits  []*types.Habit    `json:"possibleHabits"`
	CompletedHabits []*types.DayHabit `json:"completedHabits"`
}

type GlobalAnalytics struct {
	TotalDaysTracked   int `json:"totalDaysTracked"`
	CompletedDaysCount int `json:"completedDaysCount"`
	GlobalCompletion   int `json:"globalCompletion"`
	Streak             int `json:"streak"`
}

type SummaryService interface {
	GetSummary(ctx context.Context) ([]repos.DaySummaryRow, error)
	GetDayDetails(ctx context.Context, date time.Time) (*DayDetails, error)
	GetGlobalAnalytics(ctx context.Context) (*GlobalAnalytics, error)
}

type summaryService struct {
	db           *gorm.DB
	log          *logger.Logger
	habitRepo    repos.HabitRepo
	dayHabitRepo repos.DayHabitRepo
}

func NewSummaryService(db *gorm.DB, log *logger.Logger, habitRepo repos.HabitRepo, dayHabitRepo repos.DayHabitRepo) SummaryService {
	serviceLog := log.With("service", "SummaryService")
	return &summaryService{
		db:           db,
		log:          serviceLog,
		habitRepo:    habitRepo,
		dayHabitRepo: dayHabitRepo,
	}
}

// GetSummary returns one heatmap row per distinct day that has at least one
// completion record. Note that amount deliberately ignores recurrence (every
// habit created by that day counts), unlike GetDayDetails' possible set.
func (ss *summaryService) GetSummary(ctx context.Context) ([]repos.DaySummaryRow, error) {
	summary, err := ss.dayHabitRepo.DaySummary(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error querying day summary: %w", err)
	}
	return summary, nil
}

// GetDayDetails resolves a calendar date: which habits are scheduled on it
// (created by end of that day, recurring on its weekday) and which records
// exist for it. The input may carry a time-of-day; it is discarded.
func (ss *summaryService) GetDayDetails(ctx context.Context, date time.Time) (*DayDetails, error) {
	dayStart := startOfDay(date)
	dayEnd := endOfDay(date)
	weekDay := int(dayStart.Weekday())

	possible, err := ss.habitRepo.ListScheduled(ctx, nil, weekDay, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("error listing scheduled habits: %w", err)
	}
	completed, err := ss.dayHabitRepo.ListByDay(ctx, nil, dayStart)
	if err != nil {
		return nil, fmt.Errorf("error listing day records: %w", err)
	}

	if possible == nil {
		possible = []*types.Habit{}
	}
	if completed == nil {
		completed = []*types.DayHabit{}
	}
	return &DayDetails{PossibleHabits: possible, CompletedHabits: completed}, nil
}

// GetGlobalAnalytics computes whole-history metrics. With no habits yet it
// returns the zero-valued result rather than an error.
func (ss *summaryService) GetGlobalAnalytics(ctx context.Context) (*GlobalAnalytics, error) {
	habits, err := ss.habitRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error listing habits: %w", err)
	}
	counts, err := ss.dayHabitRepo.CompletedCountsByDay(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error querying completed counts: %w", err)
	}

	analytics := computeGlobalAnalytics(habits, counts, startOfDay(time.Now()))
	return &analytics, nil
}
