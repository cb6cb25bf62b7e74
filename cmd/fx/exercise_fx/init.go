package exercise_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitplan/internal/api/controllers"
	"fitplan/internal/repositories"
	"fitplan/internal/services"
)

var Module = fx.Provide(
	ProvideExerciseRepository,
	ProvideExerciseService,
	ProvideExerciseController,
)

func ProvideExerciseRepository(db *gorm.DB) repositories.ExerciseRepositoryInterface {
	return repositories.NewExerciseRepository(db)
}

func ProvideExerciseService(
	exerciseRepo repositories.ExerciseRepositoryInterface,
	videoService services.VideoServiceInterface,
) services.ExerciseServiceInterface {
	return services.NewExerciseService(exerciseRepo, videoService)
}

func ProvideExerciseController(exerciseService services.ExerciseServiceInterface) *controllers.ExerciseController {
	return controllers.NewExerciseController(exerciseService)
}
