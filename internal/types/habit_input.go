package types

// HabitCreate carries the fields accepted at habit creation. Title and
// WeekDays are required; the rest are optional display metadata.
type HabitCreate struct {
  Title    string
  WeekDays []int
  Category string
  Color    string
  Goal     int
  Unit     string
}

// HabitUpdate distinguishes "field omitted" (nil) from "field set" by type.
// A nil WeekDays slice leaves the recurrence untouched; a non-nil one replaces
// it wholesale.
type HabitUpdate struct {
  Title    *string
  Category *string
  Color    *string
  Goal     *int
  Unit     *string
  WeekDays []int
}

// IsEmpty reports whether the update patches nothing.
func (u HabitUpdate) IsEmpty() bool {
  return u.Title == nil && u.Category == nil && u.Color == nil &&
    u.Goal == nil && u.Unit == nil && u.WeekDays == nil
}
