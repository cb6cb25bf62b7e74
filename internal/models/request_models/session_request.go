package request_models

import "encoding/json"

type LogSessionRequest struct {
	DayLabel    string          `json:"day_label" binding:"required"`
	PerformedAt int64           `json:"performed_at"`
	DurationMin int             `json:"duration_min"`
	Notes       string          `json:"notes"`
	ExerciseLog json.RawMessage `json:"exercise_log"`
}
