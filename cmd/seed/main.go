package main

import (
  "fmt"
  "os"
  "time"
  "github.com/google/uuid"
  "github.com/yungbote/ritual-backend/internal/db"
  "github.com/yungbote/ritual-backend/internal/logger"
  "github.com/yungbote/ritual-backend/internal/types"
  "gorm.io/gorm"
)

// Seeds the store with demo habits and a few days of history. Wipes existing
// data first.
func main() {
  log, err := logger.New(os.Getenv("LOG_MODE"))
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  databaseService, err := db.NewDatabaseService(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err := databaseService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }

  if err := seed(databaseService.DB()); err != nil {
    log.Error("Seed failed", "error", err)
    os.Exit(1)
  }
  log.Info("Seed complete")
}

func day(value string) time.Time {
  t, err := time.ParseInLocation("2006-01-02", value, time.Local)
  if err != nil {
    panic(err)
  }
  return t
}

func seed(theDB *gorm.DB) error {
  return theDB.Transaction(func(tx *gorm.DB) error {
    for _, model := range []interface{}{&types.DayHabit{}, &types.HabitWeekDay{}, &types.Habit{}} {
      if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
        return err
      }
    }

    waterID := uuid.MustParse("0730ffac-d039-4194-9571-01aa2aa0efbd")
    exerciseID := uuid.MustParse("00880d75-a933-4fef-94ab-e05744435297")
    sleepID := uuid.MustParse("fa1a1bcf-3d87-4626-8c0d-d7fd1255ac00")

    habits := []*types.Habit{
      {ID: waterID, Title: "Beber 2L água", Category: "Dieta", Goal: 2000, Unit: "ml", CreatedAt: day("2025-01-01")},
      {ID: exerciseID, Title: "Exercitar", Category: "Treino", CreatedAt: day("2025-01-03")},
      {ID: sleepID, Title: "Dormir 8h", CreatedAt: day("2025-01-08")},
    }
    for _, habit := range habits {
      habit.UpdatedAt = habit.CreatedAt
      if err := tx.Create(habit).Error; err != nil {
        return err
      }
      // Every weekday by default
      for weekDay := 0; weekDay <= 6; weekDay++ {
        entry := &types.HabitWeekDay{ID: uuid.New(), HabitID: habit.ID, WeekDay: weekDay}
        if err := tx.Create(entry).Error; err != nil {
          return err
        }
      }
    }

    records := []struct {
      habitID uuid.UUID
      day     string
      value   int
    }{
      {waterID, "2025-01-02", 2000},
      {waterID, "2025-01-04", 1500},
      {exerciseID, "2025-01-04", 1},
      {waterID, "2025-01-06", 2000},
      {exerciseID, "2025-01-06", 1},
    }
    for _, record := range records {
      row := &types.DayHabit{
        ID:        uuid.New(),
        HabitID:   record.habitID,
        Day:       day(record.day),
        Value:     record.value,
        CreatedAt: day(record.day),
        UpdatedAt: day(record.day),
      }
      if err := tx.Create(row).Error; err != nil {
        return err
      }
    }
    return nil
  })
}
