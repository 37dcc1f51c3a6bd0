// internal/repository/mocks/goal_repository.go
// service層テスト用の手書きモックです。
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"swinglab/internal/model"
)

type GoalRepository struct {
	mock.Mock
}

func (m *GoalRepository) Create(ctx context.Context, tx *gorm.DB, goal *model.Goal) error {
	args := m.Called(ctx, tx, goal)
	return args.Error(0)
}

func (m *GoalRepository) FindByID(ctx context.Context, db *gorm.DB, playerID, goalID uuid.UUID) (*model.Goal, error) {
	args := m.Called(ctx, db, playerID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *GoalRepository) FindByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID) ([]*model.Goal, error) {
	args := m.Called(ctx, db, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Goal), args.Error(1)
}

func (m *GoalRepository) FindActiveByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID) ([]*model.Goal, error) {
	args := m.Called(ctx, db, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Goal), args.Error(1)
}

func (m *GoalRepository) FindOverdueActive(ctx context.Context, db *gorm.DB, today time.Time) ([]*model.Goal, error) {
	args := m.Called(ctx, db, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Goal), args.Error(1)
}

func (m *GoalRepository) MarkAchieved(ctx context.Context, tx *gorm.DB, goalID, sessionID uuid.UUID, achievedDate time.Time) (bool, error) {
	args := m.Called(ctx, tx, goalID, sessionID, achievedDate)
	return args.Bool(0), args.Error(1)
}

func (m *GoalRepository) MarkMissed(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, goalID)
	return args.Bool(0), args.Error(1)
}

func (m *GoalRepository) MarkCancelled(ctx context.Context, tx *gorm.DB, playerID, goalID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, playerID, goalID)
	return args.Bool(0), args.Error(1)
}
