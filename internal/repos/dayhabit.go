package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/ritual-backend/internal/logger"
  "github.com/yungbote/ritual-backend/internal/types"
)

// DaySummaryRow is one heatmap entry: completed counts records with value > 0
// on that day, amount counts every habit created on or before the day's
// midnight, recurrence ignored.
type DaySummaryRow struct {
  Day       time.Time `gorm:"column:day" json:"day_id"`
  Completed int       `gorm:"column:completed" json:"completed"`
  Amount    int       `gorm:"column:amount" json:"amount"`
}

type DayCompletedRow struct {
  Day       time.Time `gorm:"column:day"`
  Completed int       `gorm:"column:completed"`
}

type DayHabitRepo interface {
  GetByHabitAndDay(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, day time.Time) (*types.DayHabit, error)
  Create(ctx context.Context, tx *gorm.DB, record *types.DayHabit) error
  Delete(ctx context.Context, tx *gorm.DB, recordID uuid.UUID) error
  DeleteByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error
  UpsertValue(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, day time.Time, value int) error
  UpsertNote(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, day time.Time, note string) error
  ListByDay(ctx context.Context, tx *gorm.DB, day time.Time) ([]*types.DayHabit, error)
  DaySummary(ctx context.Context, tx *gorm.DB) ([]DaySummaryRow, error)
  CompletedCountsByDay(ctx context.Context, tx *gorm.DB) ([]DayCompletedRow, error)
}

type dayHabitRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDayHabitRepo(db *gorm.DB, baseLog *logger.Logger) DayHabitRepo {
  repoLog := baseLog.With("repo", "DayHabitRepo")
  return &dayHabitRepo{db: db, log: repoLog}
}

// GetByHabitAndDay returns (nil, nil) when no record exists for the pair.
func (dr *dayHabitRepo) GetByHabitAndDay(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, day time.Time) (*types.DayHabit, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var result types.DayHabit
  err := transaction.WithContext(ctx).
    Where("habit_id = ? AND day = ?", habitID, day).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (dr *dayHabitRepo) Create(ctx context.Context, tx *gorm.DB, record *types.DayHabit) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  return transaction.WithContext(ctx).Create(record).Error
}

func (dr *dayHabitRepo) Delete(ctx context.Context, tx *gorm.DB, recordID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", recordID).
    Delete(&types.DayHabit{}).Error
}

func (dr *dayHabitRepo) DeleteByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  return transaction.WithContext(ctx).
    Where("habit_id = ?", habitID).
    Delete(&types.DayHabit{}).Error
}

// UpsertValue writes the value for (habit, day) in a single statement so
// concurrent mutations of the same key cannot interleave between a lookup and
// a write. The record persists even at value 0.
func (dr *dayHabitRepo) UpsertValue(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, day time.Time, value int) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  now := time.Now()
  record := types.DayHabit{
    ID:        uuid.New(),
    HabitID:   habitID,
    Day:       day,
    Value:     value,
    CreatedAt: now,
    UpdatedAt: now,
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "habit_id"}, {Name: "day"}},
      DoUpdates: clause.Assignments(map[string]interface{}{
        "value":      value,
        "updated_at": now,
      }),
    }).
    Create(&record).Error
}

// UpsertNote leaves the value untouched on an existing record; a fresh record
// gets the binary default of 1 alongside the note.
func (dr *dayHabitRepo) UpsertNote(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, day time.Time, note string) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  now := time.Now()
  record := types.DayHabit{
    ID:        uuid.New(),
    HabitID:   habitID,
    Day:       day,
    Value:     1,
    Note:      note,
    CreatedAt: now,
    UpdatedAt: now,
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "habit_id"}, {Name: "day"}},
      DoUpdates: clause.Assignments(map[string]interface{}{
        "note":       note,
        "updated_at": now,
      }),
    }).
    Create(&record).Error
}

func (dr *dayHabitRepo) ListByDay(ctx context.Context, tx *gorm.DB, day time.Time) ([]*types.DayHabit, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var results []*types.DayHabit
  if err := transaction.WithContext(ctx).
    Where("day = ?", day).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (dr *dayHabitRepo) DaySummary(ctx context.Context, tx *gorm.DB) ([]DaySummaryRow, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var results []DaySummaryRow
  if err := transaction.WithContext(ctx).Raw(`
    SELECT
      D.day AS day,
      SUM(CASE WHEN D.value > 0 THEN 1 ELSE 0 END) AS completed,
      (
        SELECT COUNT(*)
        FROM habit H
        WHERE H.created_at <= D.day
      ) AS amount
    FROM day_habit D
    GROUP BY D.day
    ORDER BY D.day
  `).Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (dr *dayHabitRepo) CompletedCountsByDay(ctx context.Context, tx *gorm.DB) ([]DayCompletedRow, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var results []DayCompletedRow
  if err := transaction.WithContext(ctx).Raw(`
    SELECT
      D.day AS day,
      SUM(CASE WHEN D.value > 0 THEN 1 ELSE 0 END) AS completed
    FROM day_habit D
    GROUP BY D.day
  `).Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
