package services

import (
	"context"

	"fitplan/internal/models/db_models"
	"fitplan/internal/models/plan_models"
	"fitplan/internal/models/request_models"
	"fitplan/internal/models/response_models"
	"fitplan/internal/repositories"
	"fitplan/pkg/utils"
)

type ExerciseServiceInterface interface {
	// RegisterExercise creates a canonical catalog row. This is the only
	// path that grows the catalog; video resolution never does.
	RegisterExercise(ctx context.Context, request request_models.CreateExerciseRequest) (*response_models.ExerciseResponse, error)
	GetExercise(ctx context.Context, id string) (*response_models.ExerciseResponse, error)
	ListExercises(ctx context.Context, page int, pageSize int) ([]response_models.ExerciseResponse, error)
}

type ExerciseService struct {
	exerciseRepo repositories.ExerciseRepositoryInterface
	videoService VideoServiceInterface
}

func NewExerciseService(
	exerciseRepo repositories.ExerciseRepositoryInterface,
	videoService VideoServiceInterface,
) ExerciseServiceInterface {
	return &ExerciseService{
		exerciseRepo: exerciseRepo,
		videoService: videoService,
	}
}

func (s *ExerciseService) RegisterExercise(ctx context.Context, request request_models.CreateExerciseRequest) (*response_models.ExerciseResponse, error) {
	exerciseType := NormalizeExerciseType(request.ExerciseType)
	if !contains(plan_models.CanonicalExerciseTypes, exerciseType) {
		return nil, utils.ErrInvalidInput
	}
	trackingType := NormalizeTrackingType(request.TrackingType)

	standardized := StandardizeExerciseName(request.Name)
	if standardized == "" {
		return nil, utils.ErrInvalidInput
	}

	existing, err := s.exerciseRepo.FindByStandardizedName(ctx, standardized)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return toExerciseResponse(existing), nil
	}

	exercise := &db_models.Exercise{
		Name:             request.Name,
		StandardizedName: standardized,
		ExerciseType:     exerciseType,
		TrackingType:     trackingType,
		Description:      request.Description,
	}

	// Best effort: a missing video never blocks registration.
	if videoID, err := s.videoService.ResolveVideoID(ctx, request.Name); err == nil && videoID != "" {
		exercise.VideoID = &videoID
	}

	if err := s.exerciseRepo.Insert(ctx, exercise); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toExerciseResponse(exercise), nil
}

func (s *ExerciseService) GetExercise(ctx context.Context, id string) (*response_models.ExerciseResponse, error) {
	exercise, err := s.exerciseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if exercise == nil {
		return nil, utils.ErrExerciseNotFound
	}
	return toExerciseResponse(exercise), nil
}

func (s *ExerciseService) ListExercises(ctx context.Context, page int, pageSize int) ([]response_models.ExerciseResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	exercises, err := s.exerciseRepo.ListAll(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.ExerciseResponse, 0, len(exercises))
	for i := range exercises {
		result = append(result, *toExerciseResponse(&exercises[i]))
	}
	return result, nil
}

func toExerciseResponse(e *db_models.Exercise) *response_models.ExerciseResponse {
	return &response_models.ExerciseResponse{
		ID:           e.ID.String(),
		Name:         e.Name,
		ExerciseType: e.ExerciseType,
		TrackingType: e.TrackingType,
		VideoID:      e.VideoID,
		Description:  e.Description,
	}
}
