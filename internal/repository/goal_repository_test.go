// internal/repository/goal_repository_test.go
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

func setupTestDBGoal(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Goal{}))
	return db
}

func newActiveGoal(playerID uuid.UUID, end time.Time) *model.Goal {
	return &model.Goal{
		GoalID:      uuid.New(),
		PlayerID:    playerID,
		CoachID:     uuid.New(),
		GoalType:    model.GoalAvgExitVelocity,
		TargetValue: 85.0,
		StartDate:   end.AddDate(0, -1, 0),
		EndDate:     end,
		Status:      model.GoalStatusActive,
	}
}

// MarkAchieved は active の目標に対して一度だけ成功すること。
// 2回目（別セッションによる達成の主張）は no-op になること。
func Test_gormGoalRepository_MarkAchieved_AtMostOnce(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBGoal(t)
	repo := NewGormGoalRepository()

	playerID := uuid.New()
	goal := newActiveGoal(playerID, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, db, goal))

	firstSession := uuid.New()
	secondSession := uuid.New()
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	claimed, err := repo.MarkAchieved(ctx, db, goal.GoalID, firstSession, day)
	require.NoError(t, err)
	assert.True(t, claimed, "最初の達成は成功するはず")

	claimed, err = repo.MarkAchieved(ctx, db, goal.GoalID, secondSession, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, claimed, "2回目の達成は弾かれるはず")

	// 最初のセッションが勝者として記録されていること
	stored, err := repo.FindByID(ctx, db, playerID, goal.GoalID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusAchieved, stored.Status)
	require.NotNil(t, stored.AchievedSessionID)
	assert.Equal(t, firstSession, *stored.AchievedSessionID)
	assert.True(t, stored.MilestoneAwarded)
}

func Test_gormGoalRepository_FindOverdueActive(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBGoal(t)
	repo := NewGormGoalRepository()

	today := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	playerID := uuid.New()

	overdue := newActiveGoal(playerID, today.AddDate(0, 0, -1))
	current := newActiveGoal(playerID, today.AddDate(0, 0, 10))
	cancelled := newActiveGoal(playerID, today.AddDate(0, 0, -5))
	cancelled.Status = model.GoalStatusCancelled

	require.NoError(t, repo.Create(ctx, db, overdue))
	require.NoError(t, repo.Create(ctx, db, current))
	require.NoError(t, repo.Create(ctx, db, cancelled))

	goals, err := repo.FindOverdueActive(ctx, db, today)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, overdue.GoalID, goals[0].GoalID)
}

func Test_gormGoalRepository_MarkCancelled(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBGoal(t)
	repo := NewGormGoalRepository()

	playerID := uuid.New()
	goal := newActiveGoal(playerID, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, db, goal))

	ok, err := repo.MarkCancelled(ctx, db, playerID, goal.GoalID)
	require.NoError(t, err)
	assert.True(t, ok)

	// cancelled は終端。再キャンセルも達成も弾かれる。
	ok, err = repo.MarkCancelled(ctx, db, playerID, goal.GoalID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.MarkAchieved(ctx, db, goal.GoalID, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}
