package services

import (
	"context"
	"time"

	"fitplan/internal/models/db_models"
	"fitplan/internal/models/request_models"
	"fitplan/internal/models/response_models"
	"fitplan/internal/repositories"
	"fitplan/pkg/logger"
	mem "fitplan/pkg/memcache"
	"fitplan/pkg/utils"
)

// PlanEnqueuer hands a plan-generation request to the task queue. The
// account service only triggers generation; it never runs the pipeline
// inline.
type PlanEnqueuer interface {
	EnqueueGeneration(ctx context.Context, userID string, feedback string, strict bool) error
}

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	GetProfile(ctx context.Context, userID string) (*response_models.AccountResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

type AccountService struct {
	userRepo    repositories.UserRepositoryInterface
	resetTokens mem.ResetTokenStore
	mailService IMailService
	enqueuer    PlanEnqueuer
	log         *logger.Logger
}

func NewAccountService(
	userRepo repositories.UserRepositoryInterface,
	resetTokens mem.ResetTokenStore,
	mailService IMailService,
	enqueuer PlanEnqueuer,
	log *logger.Logger,
) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		mailService: mailService,
		enqueuer:    enqueuer,
		log:         log.With("service", "AccountService"),
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:             request.DisplayName,
		Email:            request.Email,
		PasswordHash:     hashedPassword,
		Role:             "user",
		Age:              request.Age,
		Sex:              request.Sex,
		WeightKg:         request.WeightKg,
		HeightCm:         request.HeightCm,
		FitnessLevel:     request.FitnessLevel,
		Goals:            request.Goals,
		Equipment:        request.Equipment,
		SessionMinutes:   request.SessionMinutes,
		WorkoutDaysCount: request.WorkoutDaysCount,
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}

	// Registration kicks off the first plan generation cycle.
	if err := a.enqueuer.EnqueueGeneration(ctx, user.ID.String(), "", false); err != nil {
		a.log.Error("failed to enqueue initial plan generation", "user_id", user.ID.String(), "error", err)
	}

	return nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}
	return token, nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (*response_models.AccountResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.AccountResponse{
		ID:               user.ID.String(),
		Name:             user.Name,
		Email:            user.Email,
		Age:              user.Age,
		Sex:              user.Sex,
		WeightKg:         user.WeightKg,
		HeightCm:         user.HeightCm,
		FitnessLevel:     user.FitnessLevel,
		Goals:            user.Goals,
		Equipment:        user.Equipment,
		SessionMinutes:   user.SessionMinutes,
		WorkoutDaysCount: user.WorkoutDaysCount,
	}, nil
}

func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		// Do not leak which emails exist.
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.resetTokens.Set(token, user.Email, 30*time.Minute)

	if err := a.mailService.SendMailToResetPassword(user.Email, token); err != nil {
		a.log.Error("failed to send reset mail", "email", user.Email, "error", err)
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	email := a.resetTokens.Consume(token)
	if email == "" {
		return utils.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.userRepo.UpdatePassword(ctx, email, hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
