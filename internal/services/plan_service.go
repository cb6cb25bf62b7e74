package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"fitplan/internal/models/db_models"
	"fitplan/internal/models/plan_models"
	"fitplan/internal/models/response_models"
	"fitplan/internal/realtime"
	"fitplan/internal/repositories"
	"fitplan/pkg/logger"
	"fitplan/pkg/utils"
)

type PlanServiceInterface interface {
	// GeneratePlan runs the full pipeline for one user: prompt, model
	// call, repair, normalize, validate, enrich, persist, notify.
	// A returned error means nothing was written except the plan status;
	// the previous plan document (if any) is untouched.
	GeneratePlan(ctx context.Context, userID string, feedback string, strict bool) error
	GetPlan(ctx context.Context, userID string) (*response_models.PlanResponse, error)
	GetStatus(ctx context.Context, userID string) (*response_models.PlanStatusResponse, error)
}

type PlanService struct {
	userRepo     repositories.UserRepositoryInterface
	planRepo     repositories.PlanRepositoryInterface
	modelClient  utils.PlanModelClient
	validator    *PlanValidator
	videoService VideoServiceInterface
	bus          realtime.Bus
	log          *logger.Logger

	// maxAttempts bounds how often a structurally broken model response
	// is re-requested before the run is reported as failed. Transient
	// HTTP-level retries live inside the model client.
	maxAttempts int
}

func NewPlanService(
	userRepo repositories.UserRepositoryInterface,
	planRepo repositories.PlanRepositoryInterface,
	modelClient utils.PlanModelClient,
	validator *PlanValidator,
	videoService VideoServiceInterface,
	bus realtime.Bus,
	log *logger.Logger,
) PlanServiceInterface {
	maxAttempts := 2
	if v, err := strconv.Atoi(utils.GetEnvWithDefault("PLAN_GEN_ATTEMPTS", "")); err == nil && v > 0 {
		maxAttempts = v
	}
	return &PlanService{
		userRepo:     userRepo,
		planRepo:     planRepo,
		modelClient:  modelClient,
		validator:    validator,
		videoService: videoService,
		bus:          bus,
		log:          log.With("service", "PlanService"),
		maxAttempts:  maxAttempts,
	}
}

func (s *PlanService) GeneratePlan(ctx context.Context, userID string, feedback string, strict bool) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	if err := s.planRepo.UpdateStatus(ctx, uid, db_models.PlanStatusPending); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrPersistence, err)
	}

	doc, err := s.generateDocument(ctx, user, feedback, strict)
	if err != nil {
		s.failRun(ctx, uid, err)
		return err
	}

	s.videoService.EnrichPlan(ctx, doc)

	data, err := json.Marshal(doc)
	if err != nil {
		s.failRun(ctx, uid, err)
		return fmt.Errorf("%w: %v", utils.ErrPersistence, err)
	}

	plan := &db_models.WorkoutPlan{
		UserID:   uid,
		Status:   db_models.PlanStatusCompleted,
		PlanData: data,
	}
	if err := s.planRepo.Replace(ctx, plan); err != nil {
		s.failRun(ctx, uid, err)
		return fmt.Errorf("%w: %v", utils.ErrPersistence, err)
	}

	event := response_models.PlanCompletedEvent{
		Event:  response_models.EventWorkoutPlanCompleted,
		UserID: userID,
		Status: db_models.PlanStatusCompleted,
		Plan:   doc,
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		// The plan is stored; a missed notification is not a failure.
		s.log.Warn("plan completion publish failed", "user_id", userID, "error", err)
	}

	s.log.Info("workout plan generated", "user_id", userID, "strict", strict)
	return nil
}

// generateDocument asks the model for a plan and runs repair, normalization
// and validation, retrying a bounded number of times when the response is
// structurally unusable.
func (s *PlanService) generateDocument(ctx context.Context, user *db_models.User, feedback string, strict bool) (*plan_models.Document, error) {
	prompt := BuildPlanPrompt(user, feedback)
	policy := PolicySoft
	if strict {
		policy = PolicyHard
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		raw, err := s.modelClient.GeneratePlanText(ctx, prompt)
		if err != nil {
			return nil, err
		}

		parsed, err := ExtractPlanJSON(raw)
		if err != nil {
			s.log.Warn("model response unusable", "attempt", attempt, "error", err)
			lastErr = err
			continue
		}

		normalized := NormalizePlanDocument(parsed, LabelOrdinal)

		if err := s.validator.ValidateDocument(normalized); err != nil {
			s.log.Warn("generated plan failed validation", "attempt", attempt, "error", err)
			lastErr = err
			continue
		}
		if err := s.validator.ValidateStrict(normalized); err != nil {
			s.log.Warn("generated plan failed strict checks", "attempt", attempt, "error", err)
			lastErr = err
			continue
		}
		if err := s.validator.ValidateDistribution(normalized, user.WorkoutDaysCount, policy); err != nil {
			lastErr = err
			continue
		}

		doc, err := plan_models.FromMap(normalized)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", utils.ErrDecode, err)
			continue
		}
		return doc, nil
	}

	return nil, lastErr
}

func (s *PlanService) failRun(ctx context.Context, uid uuid.UUID, cause error) {
	s.log.Error("plan generation failed", "user_id", uid.String(), "error", cause)
	if err := s.planRepo.UpdateStatus(ctx, uid, db_models.PlanStatusError); err != nil {
		s.log.Error("plan status update failed", "user_id", uid.String(), "error", err)
	}
}

func (s *PlanService) GetPlan(ctx context.Context, userID string) (*response_models.PlanResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	plan, err := s.planRepo.FindByUserID(ctx, uid)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	resp := &response_models.PlanResponse{Status: plan.Status}
	if len(plan.PlanData) > 0 {
		var doc plan_models.Document
		if err := json.Unmarshal(plan.PlanData, &doc); err != nil {
			return nil, utils.ErrDatabaseError
		}
		resp.Plan = &doc
	}
	return resp, nil
}

func (s *PlanService) GetStatus(ctx context.Context, userID string) (*response_models.PlanStatusResponse, error) {
	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &response_models.PlanStatusResponse{Status: plan.Status}, nil
}
