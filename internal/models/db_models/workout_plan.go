package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Plan generation status values reported by the status endpoint.
const (
	PlanStatusPending   = "pending"
	PlanStatusCompleted = "completed"
	PlanStatusError     = "error"
)

// WorkoutPlan holds one plan per user. PlanData is the full 7-day JSON
// document ({workoutDays, additionalTips}); the whole document is swapped
// atomically on each generation cycle, never patched per day.
type WorkoutPlan struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Status   string
	PlanData datatypes.JSON
}
