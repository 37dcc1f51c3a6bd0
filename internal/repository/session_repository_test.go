// internal/repository/session_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"swinglab/internal/model"
)

func setupTestDBSessionRepo(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Session{}, &model.SwingRecord{}))
	return db
}

func newExitVeloSession(playerID uuid.UUID, date time.Time) *model.Session {
	return &model.Session{
		SessionID:   uuid.New(),
		PlayerID:    playerID,
		SessionType: model.MetricExitVelocity,
		SessionDate: date,
		PlayerLevel: model.LevelHighSchool,
	}
}

// 上限を超えた場合は最新のセッションが残り、古いものから切り捨てられること。
// 返却順は日付昇順のまま。
func Test_gormSessionRepository_FindByPlayer_LimitKeepsNewest(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBSessionRepo(t)
	repo := NewGormSessionRepository()

	playerID := uuid.New()
	dates := []time.Time{
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		require.NoError(t, repo.Create(ctx, db, newExitVeloSession(playerID, d)))
	}

	sessions, err := repo.FindByPlayer(ctx, db, playerID, model.MetricExitVelocity, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// 最古の 2025-06-01 が落ち、直近2件が日付昇順で返ること
	assert.Equal(t, dates[1], sessions[0].SessionDate)
	assert.Equal(t, dates[2], sessions[1].SessionDate)
}

func Test_gormSessionRepository_FindByPlayer_FiltersByMetricType(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBSessionRepo(t)
	repo := NewGormSessionRepository()

	playerID := uuid.New()
	exitVelo := newExitVeloSession(playerID, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	batSpeed := newExitVeloSession(playerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC))
	batSpeed.SessionType = model.MetricBatSpeed

	require.NoError(t, repo.Create(ctx, db, exitVelo))
	require.NoError(t, repo.Create(ctx, db, batSpeed))

	sessions, err := repo.FindByPlayer(ctx, db, playerID, model.MetricBatSpeed, 50)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, batSpeed.SessionID, sessions[0].SessionID)
}
