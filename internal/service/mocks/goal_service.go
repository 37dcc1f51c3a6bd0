// internal/service/mocks/goal_service.go
// handlers層テスト用の手書きモックです。
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"swinglab/internal/model"
)

type GoalService struct {
	mock.Mock
}

func (m *GoalService) CreateGoal(ctx context.Context, coachID, playerID uuid.UUID, req *model.PostGoalRequest) (*model.Goal, error) {
	args := m.Called(ctx, coachID, playerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *GoalService) GetGoal(ctx context.Context, coachID, playerID, goalID uuid.UUID) (*model.Goal, error) {
	args := m.Called(ctx, coachID, playerID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *GoalService) ListGoals(ctx context.Context, coachID, playerID uuid.UUID) ([]*model.Goal, error) {
	args := m.Called(ctx, coachID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Goal), args.Error(1)
}

func (m *GoalService) CancelGoal(ctx context.Context, coachID, playerID, goalID uuid.UUID) error {
	args := m.Called(ctx, coachID, playerID, goalID)
	return args.Error(0)
}

func (m *GoalService) ExpireOverdueGoals(ctx context.Context, today time.Time) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}
