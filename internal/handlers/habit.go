package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/ritual-backend/internal/services"
  "github.com/yungbote/ritual-backend/internal/types"
)

type HabitHandler struct {
  habitService    services.HabitService
}

func NewHabitHandler(habitService services.HabitService) *HabitHandler {
  return &HabitHandler{habitService: habitService}
}

type createHabitRequest struct {
  Title     string  `json:"title"`
  WeekDays  []int   `json:"weekDays"`
  Category  string  `json:"category"`
  Color     string  `json:"color"`
  Goal      int     `json:"goal"`
  Unit      string  `json:"unit"`
}

type updateHabitRequest struct {
  Title     *string `json:"title"`
  WeekDays  []int   `json:"weekDays"`
  Category  *string `json:"category"`
  Color     *string `json:"color"`
  Goal      *int    `json:"goal"`
  Unit      *string `json:"unit"`
}

type dayActionRequest struct {
  Date      string  `json:"date"`
  Value     *int    `json:"value"`
  Note      *string `json:"note"`
}

func habitIDParam(c *gin.Context) (uuid.UUID, error) {
  return uuid.Parse(c.Param("id"))
}

// Create handles POST /habits.
func (hh *HabitHandler) Create(c *gin.Context) {
  var req createHabitRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if req.Title == "" || req.WeekDays == nil {
    RespondError(c, http.StatusBadRequest, "missing_fields", fmt.Errorf("title and weekDays are required"))
    return
  }

  habit, err := hh.habitService.Create(c.Request.Context(), types.HabitCreate{
    Title:    req.Title,
    WeekDays: req.WeekDays,
    Category: req.Category,
    Color:    req.Color,
    Goal:     req.Goal,
    Unit:     req.Unit,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, habit)
}

// Index handles GET /habits.
func (hh *HabitHandler) Index(c *gin.Context) {
  habits, err := hh.habitService.List(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, habits)
}

// Update handles PATCH /habits/:id.
func (hh *HabitHandler) Update(c *gin.Context) {
  habitID, err := habitIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_habit_id", err)
    return
  }
  var req updateHabitRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  habit, err := hh.habitService.Update(c.Request.Context(), habitID, types.HabitUpdate{
    Title:    req.Title,
    Category: req.Category,
    Color:    req.Color,
    Goal:     req.Goal,
    Unit:     req.Unit,
    WeekDays: req.WeekDays,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, habit)
}

// Delete handles DELETE /habits/:id.
func (hh *HabitHandler) Delete(c *gin.Context) {
  habitID, err := habitIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_habit_id", err)
    return
  }
  if err := hh.habitService.Delete(c.Request.Context(), habitID); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}

// Toggle handles PATCH /habits/:id/toggle.
func (hh *HabitHandler) Toggle(c *gin.Context) {
  habitID, err := habitIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_habit_id", err)
    return
  }
  var req dayActionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if req.Date == "" {
    RespondError(c, http.StatusBadRequest, "date_required", fmt.Errorf("date is required"))
    return
  }
  date, err := parseDate(req.Date)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }

  if err := hh.habitService.Toggle(c.Request.Context(), habitID, date); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusOK)
}

// UpdateValue handles PATCH /habits/:id/value.
func (hh *HabitHandler) UpdateValue(c *gin.Context) {
  habitID, err := habitIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_habit_id", err)
    return
  }
  var req dayActionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if req.Date == "" || req.Value == nil {
    RespondError(c, http.StatusBadRequest, "missing_fields", fmt.Errorf("date and value are required"))
    return
  }
  date, err := parseDate(req.Date)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }

  if err := hh.habitService.SetValue(c.Request.Context(), habitID, date, *req.Value); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusOK)
}

// UpdateNote handles PATCH /habits/:id/note.
func (hh *HabitHandler) UpdateNote(c *gin.Context) {
  habitID, err := habitIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_habit_id", err)
    return
  }
  var req dayActionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if req.Date == "" {
    RespondError(c, http.StatusBadRequest, "date_required", fmt.Errorf("date is required"))
    return
  }
  date, err := parseDate(req.Date)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  note := ""
  if req.Note != nil {
    note = *req.Note
  }

  if err := hh.habitService.SetNote(c.Request.Context(), habitID, date, note); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusOK)
}
