package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/yungbote/ritual-backend/internal/db"
  "github.com/yungbote/ritual-backend/internal/handlers"
  "github.com/yungbote/ritual-backend/internal/logger"
  "github.com/yungbote/ritual-backend/internal/observability"
  "github.com/yungbote/ritual-backend/internal/repos"
  "github.com/yungbote/ritual-backend/internal/server"
  "github.com/yungbote/ritual-backend/internal/services"
  "github.com/yungbote/ritual-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing
  shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "ritual-backend",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if shutdownTracing != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownTracing(ctx)
    }()
  }

  // Database
  databaseService, err := db.NewDatabaseService(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = databaseService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }
  theDB := databaseService.DB()

  // Repos
  log.Info("Setting up repos from main...")
  habitRepo := repos.NewHabitRepo(theDB, log)
  weekDayRepo := repos.NewHabitWeekDayRepo(theDB, log)
  dayHabitRepo := repos.NewDayHabitRepo(theDB, log)

  // Services
  log.Info("Setting up services from main...")
  habitService := services.NewHabitService(theDB, log, habitRepo, weekDayRepo, dayHabitRepo)
  summaryService := services.NewSummaryService(theDB, log, habitRepo, dayHabitRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  habitHandler := handlers.NewHabitHandler(habitService)
  summaryHandler := handlers.NewSummaryHandler(summaryService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    Log:            log,
    HabitHandler:   habitHandler,
    SummaryHandler: summaryHandler,
  })

  port := utils.GetEnv("PORT", "3333", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
    os.Exit(1)
  }
}
