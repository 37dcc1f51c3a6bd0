package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"swinglab/internal/model"
)

type CoachRepository struct {
	mock.Mock
}

func (m *CoachRepository) Create(ctx context.Context, tx *gorm.DB, coach *model.Coach) error {
	args := m.Called(ctx, tx, coach)
	return args.Error(0)
}

func (m *CoachRepository) FindByID(ctx context.Context, db *gorm.DB, coachID uuid.UUID) (*model.Coach, error) {
	args := m.Called(ctx, db, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coach), args.Error(1)
}

func (m *CoachRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Coach, error) {
	args := m.Called(ctx, db, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coach), args.Error(1)
}
