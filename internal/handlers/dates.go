package handlers

import (
  "fmt"
  "time"
)

// parseDate accepts RFC3339 timestamps (what the web client sends) and bare
// YYYY-MM-DD dates. Bare dates are interpreted in the server's timezone.
func parseDate(raw string) (time.Time, error) {
  if t, err := time.Parse(time.RFC3339, raw); err == nil {
    return t.In(time.Local), nil
  }
  if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
    return t, nil
  }
  return time.Time{}, fmt.Errorf("invalid date %q", raw)
}
