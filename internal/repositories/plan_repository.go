package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitplan/internal/models/db_models"
)

type PlanRepositoryInterface interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.WorkoutPlan, error)
	// Replace swaps the user's plan row in one transaction: either the new
	// document and status land together or nothing changes.
	Replace(ctx context.Context, plan *db_models.WorkoutPlan) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error
}

func NewPlanRepository(db *gorm.DB) PlanRepositoryInterface {
	return &PlanRepository{db: db}
}

type PlanRepository struct {
	db *gorm.DB
}

func (r *PlanRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.WorkoutPlan, error) {
	var plan db_models.WorkoutPlan
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) Replace(ctx context.Context, plan *db_models.WorkoutPlan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "plan_data", "updated_at"}),
			}).
			Create(plan).Error
	})
}

func (r *PlanRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		existing := &db_models.WorkoutPlan{UserID: userID, Status: status}
		return tx.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
			}).
			Create(existing).Error
	})
}
