package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fitplan/internal/models/db_models"
)

type UserRepositoryInterface interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByID(ctx context.Context, id string) (*db_models.User, error)
	UpdatePassword(ctx context.Context, email string, passwordHash string) error
	UpdateProfile(ctx context.Context, user *db_models.User) error
}

func NewUserRepository(db *gorm.DB) UserRepositoryInterface {
	return &UserRepository{db: db}
}

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(user).Error
	})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash).Error
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
