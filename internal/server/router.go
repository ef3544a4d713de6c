package server

import (
  "os"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/yungbote/ritual-backend/internal/handlers"
  "github.com/yungbote/ritual-backend/internal/logger"
  "github.com/yungbote/ritual-backend/internal/middleware"
)

type RouterConfig struct {
  Log               *logger.Logger
  HabitHandler      *handlers.HabitHandler
  SummaryHandler    *handlers.SummaryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.New()
  router.Use(gin.Recovery())
  router.Use(middleware.CORS())
  router.Use(middleware.RequestLogger(cfg.Log))
  if os.Getenv("OTEL_ENABLED") != "" {
    router.Use(otelgin.Middleware("ritual-backend"))
  }

  router.GET("/healthcheck", handlers.HealthCheck)

// ===============
// || Habits    ||
// ===============
  router.GET("/habits", cfg.HabitHandler.Index)
  router.POST("/habits", cfg.HabitHandler.Create)
  router.PATCH("/habits/:id", cfg.HabitHandler.Update)
  router.DELETE("/habits/:id", cfg.HabitHandler.Delete)
  // Day actions
  router.PATCH("/habits/:id/toggle", cfg.HabitHandler.Toggle)
  router.PATCH("/habits/:id/value", cfg.HabitHandler.UpdateValue)
  router.PATCH("/habits/:id/note", cfg.HabitHandler.UpdateNote)

// ===============
// || Summary   ||
// ===============
  router.GET("/summary", cfg.SummaryHandler.Index)
  router.GET("/day", cfg.SummaryHandler.ShowDay)
  router.GET("/analytics/global", cfg.SummaryHandler.GlobalAnalytics)

  return router
}
