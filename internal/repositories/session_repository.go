package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitplan/internal/models/db_models"
)

type SessionRepositoryInterface interface {
	Insert(ctx context.Context, session *db_models.TrainingSession) error
	FindByID(ctx context.Context, id string) (*db_models.TrainingSession, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page int, pageSize int) ([]db_models.TrainingSession, error)
}

func NewSessionRepository(db *gorm.DB) SessionRepositoryInterface {
	return &SessionRepository{db: db}
}

type SessionRepository struct {
	db *gorm.DB
}

func (r *SessionRepository) Insert(ctx context.Context, session *db_models.TrainingSession) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(session).Error
	})
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*db_models.TrainingSession, error) {
	var session db_models.TrainingSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, page int, pageSize int) ([]db_models.TrainingSession, error) {
	var sessions []db_models.TrainingSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("performed_at desc").
		Scopes(func(db *gorm.DB) *gorm.DB {
			offset := (page - 1) * pageSize
			return db.Offset(offset).Limit(pageSize)
		}).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
