package response_models

import "fitplan/internal/models/plan_models"

type PlanStatusResponse struct {
	Status string `json:"status"`
}

type PlanResponse struct {
	Status string                `json:"status"`
	Plan   *plan_models.Document `json:"plan,omitempty"`
}

// PlanCompletedEvent is the payload published on the per-user channel and
// delivered over the WebSocket once generation finishes.
type PlanCompletedEvent struct {
	Event  string                `json:"event"`
	UserID string                `json:"user_id"`
	Status string                `json:"status"`
	Plan   *plan_models.Document `json:"plan,omitempty"`
}

const EventWorkoutPlanCompleted = "workout_plan_completed"
