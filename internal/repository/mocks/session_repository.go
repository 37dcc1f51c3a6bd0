package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"swinglab/internal/model"
)

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.Session) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

func (m *SessionRepository) FindByID(ctx context.Context, db *gorm.DB, playerID, sessionID uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, db, playerID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *SessionRepository) FindByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID, metricType model.MetricType, limit int) ([]*model.Session, error) {
	args := m.Called(ctx, db, playerID, metricType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Session), args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, tx *gorm.DB, playerID, sessionID uuid.UUID) error {
	args := m.Called(ctx, tx, playerID, sessionID)
	return args.Error(0)
}
