// internal/repository/coach_repository.go
package repository

import (
	"context"
	"errors"

	"swinglab/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoachRepository interface {
	Create(ctx context.Context, tx *gorm.DB, coach *model.Coach) error
	FindByID(ctx context.Context, db *gorm.DB, coachID uuid.UUID) (*model.Coach, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Coach, error)
}

type gormCoachRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormCoachRepository() CoachRepository {
	return &gormCoachRepository{}
}

func (r *gormCoachRepository) Create(ctx context.Context, tx *gorm.DB, coach *model.Coach) error {
	result := tx.WithContext(ctx).Create(coach)
	return result.Error
}

func (r *gormCoachRepository) FindByID(ctx context.Context, db *gorm.DB, coachID uuid.UUID) (*model.Coach, error) {
	var coach model.Coach
	result := db.WithContext(ctx).Where("coach_id = ?", coachID).First(&coach)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &coach, nil
}

func (r *gormCoachRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Coach, error) {
	var coach model.Coach
	result := db.WithContext(ctx).Where("email = ?", email).First(&coach)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &coach, nil
}
