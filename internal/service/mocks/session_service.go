package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"swinglab/internal/model"
)

type SessionService struct {
	mock.Mock
}

func (m *SessionService) IngestSession(ctx context.Context, coachID, playerID uuid.UUID, req *model.PostSessionRequest) (*model.Session, []model.GoalAchievedEvent, error) {
	args := m.Called(ctx, coachID, playerID, req)
	var session *model.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*model.Session)
	}
	var events []model.GoalAchievedEvent
	if args.Get(1) != nil {
		events = args.Get(1).([]model.GoalAchievedEvent)
	}
	return session, events, args.Error(2)
}

func (m *SessionService) GetSession(ctx context.Context, coachID, playerID, sessionID uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, coachID, playerID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *SessionService) DeleteSession(ctx context.Context, coachID, playerID, sessionID uuid.UUID) error {
	args := m.Called(ctx, coachID, playerID, sessionID)
	return args.Error(0)
}
