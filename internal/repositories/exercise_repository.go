package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fitplan/internal/models/db_models"
)

type ExerciseRepositoryInterface interface {
	Insert(ctx context.Context, exercise *db_models.Exercise) error
	FindByID(ctx context.Context, id string) (*db_models.Exercise, error)
	FindByStandardizedName(ctx context.Context, name string) (*db_models.Exercise, error)
	UpdateVideoID(ctx context.Context, standardizedName string, videoID string) error
	ListAll(ctx context.Context, page int, pageSize int) ([]db_models.Exercise, error)
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepositoryInterface {
	return &ExerciseRepository{db: db}
}

type ExerciseRepository struct {
	db *gorm.DB
}

func (r *ExerciseRepository) Insert(ctx context.Context, exercise *db_models.Exercise) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(exercise).Error
	})
}

func (r *ExerciseRepository) FindByID(ctx context.Context, id string) (*db_models.Exercise, error) {
	var exercise db_models.Exercise
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&exercise).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) FindByStandardizedName(ctx context.Context, name string) (*db_models.Exercise, error) {
	var exercise db_models.Exercise
	err := r.db.WithContext(ctx).Where("standardized_name = ?", name).First(&exercise).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) UpdateVideoID(ctx context.Context, standardizedName string, videoID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Exercise{}).
		Where("standardized_name = ?", standardizedName).
		Update("video_id", videoID).Error
}

func (r *ExerciseRepository) ListAll(ctx context.Context, page int, pageSize int) ([]db_models.Exercise, error) {
	var exercises []db_models.Exercise
	err := r.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	return exercises, nil
}
