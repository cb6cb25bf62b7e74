package request_models

type CreateExerciseRequest struct {
	Name         string `json:"name" binding:"required"`
	ExerciseType string `json:"exercise_type" binding:"required"`
	TrackingType string `json:"tracking_type" binding:"required"`
	Description  string `json:"description"`
}
