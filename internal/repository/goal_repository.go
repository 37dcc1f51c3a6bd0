// internal/repository/goal_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"swinglab/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, goal *model.Goal) error
	FindByID(ctx context.Context, db *gorm.DB, playerID, goalID uuid.UUID) (*model.Goal, error)
	FindByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID) ([]*model.Goal, error)
	FindActiveByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID) ([]*model.Goal, error)
	FindOverdueActive(ctx context.Context, db *gorm.DB, today time.Time) ([]*model.Goal, error)
	// MarkAchieved は active のままの目標だけを achieved に更新します。
	// 既に終端状態なら false を返します（並行取り込み時の多重達成防止）。
	MarkAchieved(ctx context.Context, tx *gorm.DB, goalID, sessionID uuid.UUID, achievedDate time.Time) (bool, error)
	MarkMissed(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (bool, error)
	MarkCancelled(ctx context.Context, tx *gorm.DB, playerID, goalID uuid.UUID) (bool, error)
}

type gormGoalRepository struct{}

func NewGormGoalRepository() GoalRepository {
	return &gormGoalRepository{}
}

func (r *gormGoalRepository) Create(ctx context.Context, tx *gorm.DB, goal *model.Goal) error {
	result := tx.WithContext(ctx).Create(goal)
	return result.Error
}

func (r *gormGoalRepository) FindByID(ctx context.Context, db *gorm.DB, playerID, goalID uuid.UUID) (*model.Goal, error) {
	var goal model.Goal
	result := db.WithContext(ctx).Where("player_id = ? AND goal_id = ?", playerID, goalID).First(&goal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &goal, nil
}

func (r *gormGoalRepository) FindByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID) ([]*model.Goal, error) {
	var goals []*model.Goal
	result := db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("end_date ASC, created_at ASC").
		Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

func (r *gormGoalRepository) FindActiveByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID) ([]*model.Goal, error) {
	var goals []*model.Goal
	result := db.WithContext(ctx).
		Where("player_id = ? AND status = ?", playerID, model.GoalStatusActive).
		Order("created_at ASC").
		Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

func (r *gormGoalRepository) FindOverdueActive(ctx context.Context, db *gorm.DB, today time.Time) ([]*model.Goal, error) {
	var goals []*model.Goal
	result := db.WithContext(ctx).
		Where("status = ? AND end_date < ?", model.GoalStatusActive, today).
		Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

func (r *gormGoalRepository) MarkAchieved(ctx context.Context, tx *gorm.DB, goalID, sessionID uuid.UUID, achievedDate time.Time) (bool, error) {
	// status = active を条件に含めることで、先に達成した側だけが勝つ。
	result := tx.WithContext(ctx).Model(&model.Goal{}).
		Where("goal_id = ? AND status = ?", goalID, model.GoalStatusActive).
		Updates(map[string]interface{}{
			"status":              model.GoalStatusAchieved,
			"achieved_date":       achievedDate,
			"achieved_session_id": sessionID,
			"milestone_awarded":   true,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormGoalRepository) MarkMissed(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Goal{}).
		Where("goal_id = ? AND status = ?", goalID, model.GoalStatusActive).
		Update("status", model.GoalStatusMissed)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormGoalRepository) MarkCancelled(ctx context.Context, tx *gorm.DB, playerID, goalID uuid.UUID) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Goal{}).
		Where("player_id = ? AND goal_id = ? AND status = ?", playerID, goalID, model.GoalStatusActive).
		Update("status", model.GoalStatusCancelled)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
