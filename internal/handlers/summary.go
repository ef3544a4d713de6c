package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ritual-backend/internal/services"
)

type SummaryHandler struct {
  summaryService    services.SummaryService
}

func NewSummaryHandler(summaryService services.SummaryService) *SummaryHandler {
  return &SummaryHandler{summaryService: summaryService}
}

// Index handles GET /summary (the yearly heatmap).
func (sh *SummaryHandler) Index(c *gin.Context) {
  summary, err := sh.summaryService.GetSummary(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, summary)
}

// ShowDay handles GET /day?date=...
func (sh *SummaryHandler) ShowDay(c *gin.Context) {
  raw := c.Query("date")
  if raw == "" {
    RespondError(c, http.StatusBadRequest, "date_required", fmt.Errorf("date query param is required"))
    return
  }
  date, err := parseDate(raw)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }

  details, err := sh.summaryService.GetDayDetails(c.Request.Context(), date)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, details)
}

// GlobalAnalytics handles GET /analytics/global.
func (sh *SummaryHandler) GlobalAnalytics(c *gin.Context) {
  analytics, err := sh.summaryService.GetGlobalAnalytics(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, analytics)
}
