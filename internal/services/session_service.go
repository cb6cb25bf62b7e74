package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fitplan/internal/models/db_models"
	"fitplan/internal/models/request_models"
	"fitplan/internal/models/response_models"
	"fitplan/internal/repositories"
	"fitplan/pkg/utils"
)

type SessionServiceInterface interface {
	LogSession(ctx context.Context, userID string, request request_models.LogSessionRequest) (*response_models.SessionResponse, error)
	ListSessions(ctx context.Context, userID string, page int, pageSize int) ([]response_models.SessionResponse, error)
}

type SessionService struct {
	sessionRepo repositories.SessionRepositoryInterface
}

func NewSessionService(sessionRepo repositories.SessionRepositoryInterface) SessionServiceInterface {
	return &SessionService{sessionRepo: sessionRepo}
}

func (s *SessionService) LogSession(ctx context.Context, userID string, request request_models.LogSessionRequest) (*response_models.SessionResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	performedAt := request.PerformedAt
	if performedAt <= 0 {
		performedAt = time.Now().Unix()
	}

	session := &db_models.TrainingSession{
		UserID:      uid,
		DayLabel:    request.DayLabel,
		PerformedAt: performedAt,
		DurationMin: request.DurationMin,
		Notes:       request.Notes,
		ExerciseLog: []byte(request.ExerciseLog),
	}

	if err := s.sessionRepo.Insert(ctx, session); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toSessionResponse(session), nil
}

func (s *SessionService) ListSessions(ctx context.Context, userID string, page int, pageSize int) ([]response_models.SessionResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	sessions, err := s.sessionRepo.ListByUser(ctx, uid, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

func toSessionResponse(s *db_models.TrainingSession) *response_models.SessionResponse {
	return &response_models.SessionResponse{
		ID:          s.ID.String(),
		DayLabel:    s.DayLabel,
		PerformedAt: s.PerformedAt,
		DurationMin: s.DurationMin,
		Notes:       s.Notes,
		ExerciseLog: []byte(s.ExerciseLog),
	}
}
