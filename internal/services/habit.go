package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ritual-backend/internal/apierr"
	"github.com/yungbote/ritual-backend/internal/logger"
	"github.com/yungbote/ritual-backend/internal/repos"
	"github.com/yungbote/ritual-backend/internal/types"
)

type HabitService interface {
	Create(ctx context.Context, input types.HabitCreate) (*types.Habit, error)
	List(ctx context.Context) ([]*types.Habit, error)
	Update(ctx context.Context, habitID uuid.UUID, update types.HabitUpdate) (*types.Habit, error)
	Delete(ctx context.Context, habitID uuid.UUID) error
	Toggle(ctx context.Context, habitID uuid.UUID, date time.Time) error
	SetValue(ctx context.Context, habitID uuid.UUID, date time.Time, value int) error
	SetNote(ctx context.Context, habitID uuid.UUID, date time.Time, note string) error
}

type habitService struct {
	db           *gorm.DB
	log          *logger.Logger
	habitRepo    repos.HabitRepo
	weekDayRepo  repos.HabitWeekDayRepo
	dayHabitRepo repos.DayHabitRepo
}

func NewHabitService(db *gorm.DB, log *logger.Logger, habitRepo repos.HabitRepo, weekDayRepo repos.HabitWeekDayRepo, dayHabitRepo repos.DayHabitRepo) HabitService {
	serviceLog := log.With("service", "HabitService")
	return &habitService{
		db:           db,
		log:          serviceLog,
		habitRepo:    habitRepo,
		weekDayRepo:  weekDayRepo,
		dayHabitRepo: dayHabitRepo,
	}
}

// normalizeWeekDays validates, deduplicates and sorts a recurrence set.
func normalizeWeekDays(weekDays []int) ([]int, error) {
	seen := map[int]struct{}{}
	out := make([]int, 0, len(weekDays))
	for _, weekDay := range weekDays {
		if weekDay < 0 || weekDay > 6 {
			return nil, fmt.Errorf("week day %d out of range 0-6", weekDay)
		}
		if _, ok := seen[weekDay]; ok {
			continue
		}
		seen[weekDay] = struct{}{}
		out = append(out, weekDay)
	}
	sort.Ints(out)
	return out, nil
}

func (hs *habitService) getHabit(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) (*types.Habit, error) {
	habit, err := hs.habitRepo.GetByID(ctx, tx, habitID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.New(http.StatusNotFound, "habit_not_found", fmt.Errorf("habit %s does not exist", habitID))
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching habit: %w", err)
	}
	return habit, nil
}

func (hs *habitService) Create(ctx context.Context, input types.HabitCreate) (*types.Habit, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.New(http.StatusBadRequest, "title_required", fmt.Errorf("title is required"))
	}
	weekDays, err := normalizeWeekDays(input.WeekDays)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_week_days", err)
	}
	if len(weekDays) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "week_days_required", fmt.Errorf("at least one week day is required"))
	}
	if input.Goal < 0 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_goal", fmt.Errorf("goal must not be negative"))
	}

	now := time.Now()
	habit := &types.Habit{
		ID:        uuid.New(),
		Title:     title,
		Category:  input.Category,
		Color:     input.Color,
		Goal:      input.Goal,
		Unit:      input.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := hs.habitRepo.Create(ctx, tx, habit); err != nil {
			return fmt.Errorf("error creating habit: %w", err)
		}
		if err := hs.weekDayRepo.CreateMany(ctx, tx, habit.ID, weekDays); err != nil {
			return fmt.Errorf("error creating recurrence: %w", err)
		}
		reloaded, err := hs.habitRepo.GetByID(ctx, tx, habit.ID)
		if err != nil {
			return fmt.Errorf("error reloading habit: %w", err)
		}
		habit = reloaded
		return nil
	}); err != nil {
		hs.log.Warn("Create transaction error", "error", err)
		return nil, err
	}
	return habit, nil
}

func (hs *habitService) List(ctx context.Context) ([]*types.Habit, error) {
	habits, err := hs.habitRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error listing habits: %w", err)
	}
	return habits, nil
}

// Update patches scalar fields individually and, when WeekDays is present,
// replaces the recurrence wholesale. The delete-old plus create-new sequence
// commits as one transaction so a half-replaced recurrence is never visible.
func (hs *habitService) Update(ctx context.Context, habitID uuid.UUID, update types.HabitUpdate) (*types.Habit, error) {
	if update.IsEmpty() {
		return nil, apierr.New(http.StatusBadRequest, "no_update_fields", fmt.Errorf("no fields provided to update"))
	}
	if update.Goal != nil && *update.Goal < 0 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_goal", fmt.Errorf("goal must not be negative"))
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, apierr.New(http.StatusBadRequest, "title_required", fmt.Errorf("title must not be empty"))
	}

	var weekDays []int
	if update.WeekDays != nil {
		normalized, err := normalizeWeekDays(update.WeekDays)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_week_days", err)
		}
		weekDays = normalized
	}

	var out *types.Habit
	if err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := hs.getHabit(ctx, tx, habitID); err != nil {
			return err
		}
		if err := hs.habitRepo.UpdateFields(ctx, tx, habitID, update); err != nil {
			return fmt.Errorf("error updating habit: %w", err)
		}
		if update.WeekDays != nil {
			if err := hs.weekDayRepo.DeleteByHabitID(ctx, tx, habitID); err != nil {
				return fmt.Errorf("error clearing recurrence: %w", err)
			}
			if err := hs.weekDayRepo.CreateMany(ctx, tx, habitID, weekDays); err != nil {
				return fmt.Errorf("error recreating recurrence: %w", err)
			}
		}
		reloaded, err := hs.habitRepo.GetByID(ctx, tx, habitID)
		if err != nil {
			return fmt.Errorf("error reloading habit: %w", err)
		}
		out = reloaded
		return nil
	}); err != nil {
		hs.log.Warn("Update transaction error", "habit_id", habitID, "error", err)
		return nil, err
	}
	return out, nil
}

// Delete removes the habit together with its recurrence entries and every
// completion record, in one transaction.
func (hs *habitService) Delete(ctx context.Context, habitID uuid.UUID) error {
	if err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := hs.getHabit(ctx, tx, habitID); err != nil {
			return err
		}
		if err := hs.dayHabitRepo.DeleteByHabitID(ctx, tx, habitID); err != nil {
			return fmt.Errorf("error deleting day records: %w", err)
		}
		if err := hs.weekDayRepo.DeleteByHabitID(ctx, tx, habitID); err != nil {
			return fmt.Errorf("error deleting recurrence: %w", err)
		}
		if err := hs.habitRepo.Delete(ctx, tx, habitID); err != nil {
			return fmt.Errorf("error deleting habit: %w", err)
		}
		return nil
	}); err != nil {
		hs.log.Warn("Delete transaction error", "habit_id", habitID, "error", err)
		return err
	}
	return nil
}

// Toggle flips the binary state for (habit, day): absent creates a record with
// value 1, present deletes the record entirely -- including any attached note.
func (hs *habitService) Toggle(ctx context.Context, habitID uuid.UUID, date time.Time) error {
	day := startOfDay(date)
	if err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := hs.getHabit(ctx, tx, habitID); err != nil {
			return err
		}
		record, err := hs.dayHabitRepo.GetByHabitAndDay(ctx, tx, habitID, day)
		if err != nil {
			return fmt.Errorf("error fetching day record: %w", err)
		}
		if record != nil {
			return hs.dayHabitRepo.Delete(ctx, tx, record.ID)
		}
		now := time.Now()
		return hs.dayHabitRepo.Create(ctx, tx, &types.DayHabit{
			ID:        uuid.New(),
			HabitID:   habitID,
			Day:       day,
			Value:     1,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}); err != nil {
		hs.log.Warn("Toggle transaction error", "habit_id", habitID, "error", err)
		return err
	}
	return nil
}

// SetValue upserts the numeric progress for (habit, day). Setting 0 keeps the
// record around; only Toggle ever deletes one.
func (hs *habitService) SetValue(ctx context.Context, habitID uuid.UUID, date time.Time, value int) error {
	if value < 0 {
		return apierr.New(http.StatusBadRequest, "invalid_value", fmt.Errorf("value must not be negative"))
	}
	day := startOfDay(date)
	if err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := hs.getHabit(ctx, tx, habitID); err != nil {
			return err
		}
		return hs.dayHabitRepo.UpsertValue(ctx, tx, habitID, day, value)
	}); err != nil {
		hs.log.Warn("SetValue transaction error", "habit_id", habitID, "error", err)
		return err
	}
	return nil
}

// SetNote upserts the diary note for (habit, day) without touching the value.
func (hs *habitService) SetNote(ctx context.Context, habitID uuid.UUID, date time.Time, note string) error {
	day := startOfDay(date)
	if err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := hs.getHabit(ctx, tx, habitID); err != nil {
			return err
		}
		return hs.dayHabitRepo.UpsertNote(ctx, tx, habitID, day, note)
	}); err != nil {
		hs.log.Warn("SetNote transaction error", "habit_id", habitID, "error", err)
		return err
	}
	return nil
}
