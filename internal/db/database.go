package db

import (
  "fmt"
  "strings"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/yungbote/ritual-backend/internal/types"
  "github.com/yungbote/ritual-backend/internal/utils"
  "github.com/yungbote/ritual-backend/internal/logger"
)

type DatabaseService struct {
  db  *gorm.DB
  driver string
  log *logger.Logger
}

// NewDatabaseService opens the store selected by DB_DRIVER: "postgres"
// (default) or "sqlite" for a local file database.
func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
  serviceLog := log.With("service", "DatabaseService")

  driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

  var dialector gorm.Dialector
  switch driver {
  case "sqlite":
    sqlitePath := utils.GetEnv("SQLITE_PATH", "ritual.db", log)
    dialector = sqlite.Open(sqlitePath)
  case "postgres":
    postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
    postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
    postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    postgresName := utils.GetEnv("POSTGRES_NAME", "ritual", log)
    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)
    dialector = postgres.Open(dsn)
  default:
    return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
  }

  log.Info("Connecting to database...", "driver", driver)
  db, err := gorm.Open(dialector, &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to database", "driver", driver, "error", err)
    return nil, fmt.Errorf("failed to connect to database: %w", err)
  }

  return &DatabaseService{db: db, driver: driver, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.Habit{},
    &types.HabitWeekDay{},
    &types.DayHabit{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  if s.driver != "postgres" {
    return nil
  }
  // Cascade constraints keep habit deletion atomic at the store level; the
  // service layer still deletes children explicitly so sqlite behaves the same.
  s.log.Info("Configuring foreign key relationships...")
  if err := s.db.Exec(`
    ALTER TABLE "habit_week_day"
    DROP CONSTRAINT IF EXISTS "fk_habit_week_day_habit_id";
  `).Error; err != nil {
    return fmt.Errorf("failed to reset fk_habit_week_day_habit_id: %w", err)
  }
  if err := s.db.Exec(`
    ALTER TABLE "habit_week_day"
    ADD CONSTRAINT "fk_habit_week_day_habit_id"
    FOREIGN KEY ("habit_id")
    REFERENCES "habit"("id")
    ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_habit_week_day_habit_id: %w", err)
  }
  if err := s.db.Exec(`
    ALTER TABLE "day_habit"
    DROP CONSTRAINT IF EXISTS "fk_day_habit_habit_id";
  `).Error; err != nil {
    return fmt.Errorf("failed to reset fk_day_habit_habit_id: %w", err)
  }
  if err := s.db.Exec(`
    ALTER TABLE "day_habit"
    ADD CONSTRAINT "fk_day_habit_habit_id"
    FOREIGN KEY ("habit_id")
    REFERENCES "habit"("id")
    ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_day_habit_habit_id: %w", err)
  }
  return nil
}

func (s *DatabaseService) DB() *gorm.DB {
  return s.db
}
