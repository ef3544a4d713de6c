package handlers

import (
  "bytes"
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "testing"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/ritual-backend/internal/repos"
  "github.com/yungbote/ritual-backend/internal/services"
  "github.com/yungbote/ritual-backend/internal/testutil"
)

func newTestRouter(t *testing.T) *gin.Engine {
  t.Helper()
  gin.SetMode(gin.TestMode)

  db := testutil.DB(t)
  log := testutil.Logger(t)
  habitRepo := repos.NewHabitRepo(db, log)
  weekDayRepo := repos.NewHabitWeekDayRepo(db, log)
  dayHabitRepo := repos.NewDayHabitRepo(db, log)
  habitService := services.NewHabitService(db, log, habitRepo, weekDayRepo, dayHabitRepo)
  summaryService := services.NewSummaryService(db, log, habitRepo, dayHabitRepo)
  habitHandler := NewHabitHandler(habitService)
  summaryHandler := NewSummaryHandler(summaryService)

  router := gin.New()
  router.GET("/healthcheck", HealthCheck)
  router.GET("/habits", habitHandler.Index)
  router.POST("/habits", habitHandler.Create)
  router.PATCH("/habits/:id", habitHandler.Update)
  router.DELETE("/habits/:id", habitHandler.Delete)
  router.PATCH("/habits/:id/toggle", habitHandler.Toggle)
  router.PATCH("/habits/:id/value", habitHandler.UpdateValue)
  router.PATCH("/habits/:id/note", habitHandler.UpdateNote)
  router.GET("/summary", summaryHandler.Index)
  router.GET("/day", summaryHandler.ShowDay)
  router.GET("/analytics/global", summaryHandler.GlobalAnalytics)
  return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
  t.Helper()
  var reader *bytes.Reader
  if body != "" {
    reader = bytes.NewReader([]byte(body))
  } else {
    reader = bytes.NewReader(nil)
  }
  req := httptest.NewRequest(method, path, reader)
  req.Header.Set("Content-Type", "application/json")
  rec := httptest.NewRecorder()
  router.ServeHTTP(rec, req)
  return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
  t.Helper()
  var envelope ErrorEnvelope
  if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
    t.Fatalf("failed to decode error envelope %q: %v", rec.Body.String(), err)
  }
  if envelope.Error.Message == "" {
    t.Fatalf("error envelope missing message: %q", rec.Body.String())
  }
  return envelope.Error.Code
}

func TestHealthCheck(t *testing.T) {
  router := newTestRouter(t)
  rec := doJSON(t, router, http.MethodGet, "/healthcheck", "")
  if rec.Code != http.StatusOK {
    t.Fatalf("expected 200, got %d", rec.Code)
  }
}

func TestCreateHabitValidation(t *testing.T) {
  router := newTestRouter(t)

  rec := doJSON(t, router, http.MethodPost, "/habits", `{"title":"Read"}`)
  if rec.Code != http.StatusBadRequest {
    t.Fatalf("expected 400 for missing weekDays, got %d", rec.Code)
  }
  if code := errorCode(t, rec); code != "missing_fields" {
    t.Fatalf("expected missing_fields, got %s", code)
  }

  rec = doJSON(t, router, http.MethodPost, "/habits", `{"title":"Read","weekDays":"monday"}`)
  if rec.Code != http.StatusBadRequest {
    t.Fatalf("expected 400 for non-array weekDays, got %d", rec.Code)
  }
  if code := errorCode(t, rec); code != "invalid_body" {
    t.Fatalf("expected invalid_body, got %s", code)
  }
}

func TestCreateAndFetchHabit(t *testing.T) {
  router := newTestRouter(t)

  rec := doJSON(t, router, http.MethodPost, "/habits",
    `{"title":"Read","weekDays":[1,3],"goal":30,"unit":"pages"}`)
  if rec.Code != http.StatusCreated {
    t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
  }

  var created struct {
    ID       uuid.UUID `json:"id"`
    Title    string    `json:"title"`
    Goal     int       `json:"goal"`
    WeekDays []struct {
      WeekDay int `json:"week_day"`
    } `json:"week_days"`
  }
  if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
    t.Fatalf("decode created habit: %v", err)
  }
  if created.Title != "Read" || created.Goal != 30 || len(created.WeekDays) != 2 {
    t.Fatalf("unexpected created habit: %s", rec.Body.String())
  }

  rec = doJSON(t, router, http.MethodGet, "/habits", "")
  if rec.Code != http.StatusOK {
    t.Fatalf("expected 200 from index, got %d", rec.Code)
  }
  var listed []json.RawMessage
  if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
    t.Fatalf("decode habit list: %v", err)
  }
  if len(listed) != 1 {
    t.Fatalf("expected 1 habit listed, got %d", len(listed))
  }
}

func TestDayActionValidation(t *testing.T) {
  router := newTestRouter(t)

  rec := doJSON(t, router, http.MethodPost, "/habits", `{"title":"Read","weekDays":[1]}`)
  if rec.Code != http.StatusCreated {
    t.Fatalf("setup create failed: %d", rec.Code)
  }
  var created struct {
    ID uuid.UUID `json:"id"`
  }
  if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
    t.Fatalf("decode created habit: %v", err)
  }
  base := "/habits/" + created.ID.String()

  rec = doJSON(t, router, http.MethodPatch, base+"/toggle", `{}`)
  if rec.Code != http.StatusBadRequest {
    t.Fatalf("expected 400 for missing date, got %d", rec.Code)
  }
  if code := errorCode(t, rec); code != "date_required" {
    t.Fatalf("expected date_required, got %s", code)
  }

  rec = doJSON(t, router, http.MethodPatch, base+"/toggle", `{"date":"not-a-date"}`)
  if code := errorCode(t, rec); rec.Code != http.StatusBadRequest || code != "invalid_date" {
    t.Fatalf("expected 400/invalid_date, got %d/%s", rec.Code, code)
  }

  rec = doJSON(t, router, http.MethodPatch, base+"/value", `{"date":"2025-03-10"}`)
  if code := errorCode(t, rec); rec.Code != http.StatusBadRequest || code != "missing_fields" {
    t.Fatalf("expected 400/missing_fields, got %d/%s", rec.Code, code)
  }

  rec = doJSON(t, router, http.MethodPatch, "/habits/not-a-uuid/toggle", `{"date":"2025-03-10"}`)
  if code := errorCode(t, rec); rec.Code != http.StatusBadRequest || code != "invalid_habit_id" {
    t.Fatalf("expected 400/invalid_habit_id, got %d/%s", rec.Code, code)
  }

  rec = doJSON(t, router, http.MethodPatch,
    "/habits/"+uuid.NewString()+"/toggle", `{"date":"2025-03-10"}`)
  if code := errorCode(t, rec); rec.Code != http.StatusNotFound || code != "habit_not_found" {
    t.Fatalf("expected 404/habit_not_found, got %d/%s", rec.Code, code)
  }
}

func TestShowDayRequiresDate(t *testing.T) {
  router := newTestRouter(t)

  rec := doJSON(t, router, http.MethodGet, "/day", "")
  if code := errorCode(t, rec); rec.Code != http.StatusBadRequest || code != "date_required" {
    t.Fatalf("expected 400/date_required, got %d/%s", rec.Code, code)
  }

  rec = doJSON(t, router, http.MethodGet, "/day?date=2025-03-10", "")
  if rec.Code != http.StatusOK {
    t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
  }
  var details struct {
    PossibleHabits  []json.RawMessage `json:"possibleHabits"`
    CompletedHabits []json.RawMessage `json:"completedHabits"`
  }
  if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
    t.Fatalf("decode day details: %v", err)
  }
  if details.PossibleHabits == nil || details.CompletedHabits == nil {
    t.Fatalf("expected empty arrays, got %s", rec.Body.String())
  }
}

func TestGlobalAnalyticsRoute(t *testing.T) {
  router := newTestRouter(t)

  rec := doJSON(t, router, http.MethodGet, "/analytics/global", "")
  if rec.Code != http.StatusOK {
    t.Fatalf("expected 200, got %d", rec.Code)
  }
  var analytics struct {
    TotalDaysTracked   *int `json:"totalDaysTracked"`
    CompletedDaysCount *int `json:"completedDaysCount"`
    GlobalCompletion   *int `json:"globalCompletion"`
    Streak             *int `json:"streak"`
  }
  if err := json.Unmarshal(rec.Body.Bytes(), &analytics); err != nil {
    t.Fatalf("decode analytics: %v", err)
  }
  if analytics.TotalDaysTracked == nil || analytics.Streak == nil {
    t.Fatalf("expected zero-valued analytics keys present, got %s", rec.Body.String())
  }
}
