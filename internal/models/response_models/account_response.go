package response_models

type AccountResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Age              int     `json:"age"`
	Sex              string  `json:"sex"`
	WeightKg         float64 `json:"weight_kg"`
	HeightCm         float64 `json:"height_cm"`
	FitnessLevel     string  `json:"fitness_level"`
	Goals            string  `json:"goals"`
	Equipment        string  `json:"equipment"`
	SessionMinutes   int     `json:"session_minutes"`
	WorkoutDaysCount int     `json:"workout_days_count"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
