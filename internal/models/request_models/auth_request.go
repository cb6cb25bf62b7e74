package request_models

type SignUpRequest struct {
	DisplayName      string  `json:"display_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=8"`
	Age              int     `json:"age" binding:"required"`
	Sex              string  `json:"sex"`
	WeightKg         float64 `json:"weight_kg"`
	HeightCm         float64 `json:"height_cm"`
	FitnessLevel     string  `json:"fitness_level"`
	Goals            string  `json:"goals"`
	Equipment        string  `json:"equipment"`
	SessionMinutes   int     `json:"session_minutes"`
	WorkoutDaysCount int     `json:"workout_days_count" binding:"required,min=3,max=7"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
