package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TrainingSession is one logged workout: which plan day the user performed
// and what they actually did, as a free-form JSON exercise log.
type TrainingSession struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	DayLabel    string
	PerformedAt int64
	DurationMin int
	Notes       string
	ExerciseLog datatypes.JSON
}
