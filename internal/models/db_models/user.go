package db_models

type User struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string

	// Profile attributes that feed the plan prompt.
	Age              int
	Sex              string
	WeightKg         float64
	HeightCm         float64
	FitnessLevel     string
	Goals            string
	Equipment        string
	SessionMinutes   int
	WorkoutDaysCount int

	Plan     *WorkoutPlan      `gorm:"foreignKey:UserID"`
	Sessions []TrainingSession `gorm:"foreignKey:UserID"`
}
