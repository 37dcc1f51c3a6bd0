package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"swinglab/internal/model"
)

type PlayerRepository struct {
	mock.Mock
}

func (m *PlayerRepository) Create(ctx context.Context, tx *gorm.DB, player *model.Player) error {
	args := m.Called(ctx, tx, player)
	return args.Error(0)
}

func (m *PlayerRepository) FindByID(ctx context.Context, db *gorm.DB, coachID, playerID uuid.UUID) (*model.Player, error) {
	args := m.Called(ctx, db, coachID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *PlayerRepository) FindByCoach(ctx context.Context, db *gorm.DB, coachID uuid.UUID) ([]*model.Player, error) {
	args := m.Called(ctx, db, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Player), args.Error(1)
}

func (m *PlayerRepository) Update(ctx context.Context, tx *gorm.DB, coachID, playerID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, tx, coachID, playerID, updates)
	return args.Error(0)
}

func (m *PlayerRepository) Delete(ctx context.Context, tx *gorm.DB, coachID, playerID uuid.UUID) error {
	args := m.Called(ctx, tx, coachID, playerID)
	return args.Error(0)
}
