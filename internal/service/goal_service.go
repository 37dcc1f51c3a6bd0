// internal/service/goal_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swinglab/internal/analytics"
	"swinglab/internal/metrics"
	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/repository"
)

type GoalService interface {
	CreateGoal(ctx context.Context, coachID, playerID uuid.UUID, req *model.PostGoalRequest) (*model.Goal, error)
	GetGoal(ctx context.Context, coachID, playerID, goalID uuid.UUID) (*model.Goal, error)
	ListGoals(ctx context.Context, coachID, playerID uuid.UUID) ([]*model.Goal, error)
	CancelGoal(ctx context.Context, coachID, playerID, goalID uuid.UUID) error
	ExpireOverdueGoals(ctx context.Context, today time.Time) (int, error)
}

type goalService struct {
	db         *gorm.DB
	playerRepo repository.PlayerRepository
	goalRepo   repository.GoalRepository
}

func NewGoalService(db *gorm.DB, playerRepo repository.PlayerRepository, goalRepo repository.GoalRepository) GoalService {
	return &goalService{
		db:         db,
		playerRepo: playerRepo,
		goalRepo:   goalRepo,
	}
}

func (s *goalService) CreateGoal(ctx context.Context, coachID, playerID uuid.UUID, req *model.PostGoalRequest) (*model.Goal, error) {
	logger := middleware.GetLogger(ctx)

	goalType := model.GoalType(req.GoalType)
	if !goalType.IsValid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "目標種別に指定できない値が入力されています。", "goal_type", model.ErrInvalidInput)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "開始日はYYYY-MM-DD形式で入力してください。", "start_date", model.ErrInvalidInput)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "終了日はYYYY-MM-DD形式で入力してください。", "end_date", model.ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		return nil, model.NewAppError("VALIDATION_ERROR", "終了日は開始日以降の日付を指定してください。", "end_date", model.ErrInvalidInput)
	}

	var createdGoal *model.Goal
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.playerRepo.FindByID(ctx, tx, coachID, playerID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PLAYER_NOT_FOUND", "選手が見つかりません。", "", model.ErrNotFound)
			}
			return model.ErrInternalServer
		}

		goal := &model.Goal{
			GoalID:      uuid.New(),
			PlayerID:    playerID,
			CoachID:     coachID,
			GoalType:    goalType,
			TargetValue: req.TargetValue,
			StartDate:   startDate,
			EndDate:     endDate,
			Status:      model.GoalStatusActive,
		}
		if err := s.goalRepo.Create(ctx, tx, goal); err != nil {
			logger.Error("Failed to create goal", "error", err)
			return model.ErrInternalServer
		}
		createdGoal = goal
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Goal created", "goal_id", createdGoal.GoalID, "player_id", playerID, "goal_type", goalType)
	return createdGoal, nil
}

func (s *goalService) GetGoal(ctx context.Context, coachID, playerID, goalID uuid.UUID) (*model.Goal, error) {
	if _, err := s.playerRepo.FindByID(ctx, s.db, coachID, playerID); err != nil {
		return nil, err
	}
	return s.goalRepo.FindByID(ctx, s.db, playerID, goalID)
}

func (s *goalService) ListGoals(ctx context.Context, coachID, playerID uuid.UUID) ([]*model.Goal, error) {
	if _, err := s.playerRepo.FindByID(ctx, s.db, coachID, playerID); err != nil {
		return nil, err
	}
	return s.goalRepo.FindByPlayer(ctx, s.db, playerID)
}

// CancelGoal は active な目標を cancelled に遷移させます。
// 終端状態の目標はキャンセルできません。
func (s *goalService) CancelGoal(ctx context.Context, coachID, playerID, goalID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	if _, err := s.playerRepo.FindByID(ctx, s.db, coachID, playerID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 存在確認を先に行い、404と409を区別する
		goal, err := s.goalRepo.FindByID(ctx, tx, playerID, goalID)
		if err != nil {
			return err
		}

		cancelled, err := s.goalRepo.MarkCancelled(ctx, tx, playerID, goalID)
		if err != nil {
			logger.Error("Failed to cancel goal", "error", err, "goal_id", goalID)
			return model.ErrInternalServer
		}
		if !cancelled {
			logger.Warn("Cancel rejected: goal is not active", "goal_id", goalID, "status", goal.Status)
			return model.NewAppError("GOAL_NOT_ACTIVE", "この目標は既に終了しているためキャンセルできません。", "", model.ErrConflict)
		}

		logger.Info("Goal cancelled", "goal_id", goalID, "player_id", playerID)
		return nil
	})
}

// ExpireOverdueGoals は期限切れ掃引の1回分です。
// active のまま終了日を過ぎた目標を missed に遷移させ、遷移した件数を返します。
// 取り込み時の目標評価とは独立した経路で、定期実行されます。
func (s *goalService) ExpireOverdueGoals(ctx context.Context, today time.Time) (int, error) {
	logger := middleware.GetLogger(ctx)
	expired := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goals, err := s.goalRepo.FindOverdueActive(ctx, tx, today)
		if err != nil {
			logger.Error("Failed to load overdue goals", "error", err)
			return model.ErrInternalServer
		}

		for _, goal := range goals {
			if !analytics.ExpireGoal(goal, today) {
				continue
			}
			// 同時に取り込みが達成を主張した場合は達成が勝つ
			missed, err := s.goalRepo.MarkMissed(ctx, tx, goal.GoalID)
			if err != nil {
				logger.Error("Failed to mark goal missed", "error", err, "goal_id", goal.GoalID)
				return model.ErrInternalServer
			}
			if missed {
				expired++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		metrics.GoalsExpired.Add(float64(expired))
		logger.Info("Expired overdue goals", "count", expired)
	}
	return expired, nil
}
