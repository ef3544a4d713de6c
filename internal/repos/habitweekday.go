package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ritual-backend/internal/logger"
  "github.com/yungbote/ritual-backend/internal/types"
)

type HabitWeekDayRepo interface {
  CreateMany(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, weekDays []int) error
  DeleteByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error
  ListAll(ctx context.Context, tx *gorm.DB) ([]*types.HabitWeekDay, error)
}

type habitWeekDayRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewHabitWeekDayRepo(db *gorm.DB, baseLog *logger.Logger) HabitWeekDayRepo {
  repoLog := baseLog.With("repo", "HabitWeekDayRepo")
  return &habitWeekDayRepo{db: db, log: repoLog}
}

func (wr *habitWeekDayRepo) CreateMany(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, weekDays []int) error {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  if len(weekDays) == 0 {
    return nil
  }

  rows := make([]*types.HabitWeekDay, 0, len(weekDays))
  for _, weekDay := range weekDays {
    rows = append(rows, &types.HabitWeekDay{
      ID:      uuid.New(),
      HabitID: habitID,
      WeekDay: weekDay,
    })
  }
  return transaction.WithContext(ctx).Create(&rows).Error
}

func (wr *habitWeekDayRepo) DeleteByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  return transaction.WithContext(ctx).
    Where("habit_id = ?", habitID).
    Delete(&types.HabitWeekDay{}).Error
}

func (wr *habitWeekDayRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.HabitWeekDay, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  var results []*types.HabitWeekDay
  if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
