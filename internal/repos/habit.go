package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ritual-backend/internal/logger"
  "github.com/yungbote/ritual-backend/internal/types"
)

type HabitRepo interface {
  Create(ctx context.Context, tx *gorm.DB, habit *types.Habit) error
  GetByID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) (*types.Habit, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Habit, error)
  ListScheduled(ctx context.Context, tx *gorm.DB, weekDay int, createdBy time.Time) ([]*types.Habit, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, update types.HabitUpdate) error
  Delete(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error
}

type habitRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewHabitRepo(db *gorm.DB, baseLog *logger.Logger) HabitRepo {
  repoLog := baseLog.With("repo", "HabitRepo")
  return &habitRepo{db: db, log: repoLog}
}

func (hr *habitRepo) Create(ctx context.Context, tx *gorm.DB, habit *types.Habit) error {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  return transaction.WithContext(ctx).Create(habit).Error
}

func (hr *habitRepo) GetByID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) (*types.Habit, error) {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  var result types.Habit
  if err := transaction.WithContext(ctx).
    Preload("WeekDays").
    Where("id = ?", habitID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (hr *habitRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Habit, error) {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  var results []*types.Habit
  if err := transaction.WithContext(ctx).
    Preload("WeekDays").
    Order("created_at").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListScheduled returns habits whose recurrence contains weekDay and that were
// created on or before createdBy. Callers pass the end of the target day so a
// habit created later the same day is still included.
func (hr *habitRepo) ListScheduled(ctx context.Context, tx *gorm.DB, weekDay int, createdBy time.Time) ([]*types.Habit, error) {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  var results []*types.Habit
  if err := transaction.WithContext(ctx).
    Joins("JOIN habit_week_day ON habit_week_day.habit_id = habit.id AND habit_week_day.week_day = ?", weekDay).
    Where("habit.created_at <= ?", createdBy).
    Preload("WeekDays").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (hr *habitRepo) UpdateFields(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, update types.HabitUpdate) error {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  fields := map[string]interface{}{}
  if update.Title != nil {
    fields["title"] = *update.Title
  }
  if update.Category != nil {
    fields["category"] = *update.Category
  }
  if update.Color != nil {
    fields["color"] = *update.Color
  }
  if update.Goal != nil {
    fields["goal"] = *update.Goal
  }
  if update.Unit != nil {
    fields["unit"] = *update.Unit
  }
  if len(fields) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.Habit{}).
    Where("id = ?", habitID).
    Updates(fields).Error
}

func (hr *habitRepo) Delete(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", habitID).
    Delete(&types.Habit{}).Error
}
