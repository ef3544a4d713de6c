package types

import (
  "time"
  "github.com/google/uuid"
)

// Habit is a recurring commitment. Goal == 0 marks a binary habit
// (done/not-done), Goal > 0 a numeric one (progress accumulates toward Goal).
type Habit struct {
  ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  Title       string          `gorm:"not null;column:title" json:"title"`
  Category    string          `gorm:"column:category" json:"category,omitempty"`
  Color       string          `gorm:"column:color" json:"color,omitempty"`
  Goal        int             `gorm:"column:goal;not null;default:0" json:"goal"`
  Unit        string          `gorm:"column:unit" json:"unit,omitempty"`
  CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

  WeekDays    []HabitWeekDay  `gorm:"constraint:OnDelete:CASCADE;foreignKey:HabitID;references:ID" json:"week_days,omitempty"`
}

func (Habit) TableName() string {
  return "habit"
}

// HabitWeekDay is one entry of a habit's recurrence set.
// WeekDay is 0=Sunday .. 6=Saturday, unique per habit.
type HabitWeekDay struct {
  ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  HabitID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_habit_week_day_key" json:"habit_id"`
  WeekDay     int             `gorm:"column:week_day;not null;uniqueIndex:idx_habit_week_day_key" json:"week_day"`
}

func (HabitWeekDay) TableName() string {
  return "habit_week_day"
}

// DayHabit records a habit's status on one calendar day. Day is always stored
// truncated to local midnight; the (habit_id, day) pair is unique. Presence of
// the row is what marks a binary habit complete, so deletes are hard deletes.
type DayHabit struct {
  ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  HabitID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_day_habit_key" json:"habit_id"`
  Habit       *Habit          `gorm:"constraint:OnDelete:CASCADE;foreignKey:HabitID;references:ID" json:"habit,omitempty"`
  Day         time.Time       `gorm:"column:day;not null;uniqueIndex:idx_day_habit_key" json:"day"`
  Value       int             `gorm:"column:value;not null" json:"value"`
  Note        string          `gorm:"column:note" json:"note,omitempty"`
  CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (DayHabit) TableName() string {
  return "day_habit"
}
