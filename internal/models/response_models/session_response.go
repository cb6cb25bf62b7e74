package response_models

import "encoding/json"

type SessionResponse struct {
	ID          string          `json:"id"`
	DayLabel    string          `json:"day_label"`
	PerformedAt int64           `json:"performed_at"`
	DurationMin int             `json:"duration_min"`
	Notes       string          `json:"notes,omitempty"`
	ExerciseLog json.RawMessage `json:"exercise_log,omitempty"`
}

type ExerciseResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ExerciseType string  `json:"exercise_type"`
	TrackingType string  `json:"tracking_type"`
	VideoID      *string `json:"video_id"`
	Description  string  `json:"description,omitempty"`
}
