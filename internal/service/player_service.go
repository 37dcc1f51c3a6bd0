// internal/service/player_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/repository"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, coachID uuid.UUID, req *model.PostPlayerRequest) (*model.Player, error)
	GetPlayer(ctx context.Context, coachID, playerID uuid.UUID) (*model.Player, error)
	ListPlayers(ctx context.Context, coachID uuid.UUID) ([]*model.Player, error)
	UpdatePlayer(ctx context.Context, coachID, playerID uuid.UUID, req *model.PatchPlayerRequest) (*model.Player, error)
	DeletePlayer(ctx context.Context, coachID, playerID uuid.UUID) error
}

type playerService struct {
	db         *gorm.DB
	playerRepo repository.PlayerRepository
}

func NewPlayerService(db *gorm.DB, playerRepo repository.PlayerRepository) PlayerService {
	return &playerService{
		db:         db,
		playerRepo: playerRepo,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, coachID uuid.UUID, req *model.PostPlayerRequest) (*model.Player, error) {
	logger := middleware.GetLogger(ctx)

	level := model.PlayerLevel(req.Level)
	if !level.IsValid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "レベルに指定できない値が入力されています。", "level", model.ErrInvalidInput)
	}

	player := &model.Player{
		PlayerID:  uuid.New(),
		CoachID:   coachID,
		Name:      req.Name,
		BirthYear: req.BirthYear,
		Level:     level,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.playerRepo.Create(ctx, tx, player)
	})
	if err != nil {
		logger.Error("Failed to create player", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Player created", "player_id", player.PlayerID, "level", player.Level)
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, coachID, playerID uuid.UUID) (*model.Player, error) {
	return s.playerRepo.FindByID(ctx, s.db, coachID, playerID)
}

func (s *playerService) ListPlayers(ctx context.Context, coachID uuid.UUID) ([]*model.Player, error) {
	logger := middleware.GetLogger(ctx)
	players, err := s.playerRepo.FindByCoach(ctx, s.db, coachID)
	if err != nil {
		logger.Error("Failed to list players", "error", err)
		return nil, model.ErrInternalServer
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, coachID, playerID uuid.UUID, req *model.PatchPlayerRequest) (*model.Player, error) {
	logger := middleware.GetLogger(ctx)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Level != nil {
		level := model.PlayerLevel(*req.Level)
		if !level.IsValid() {
			return nil, model.NewAppError("VALIDATION_ERROR", "レベルに指定できない値が入力されています。", "level", model.ErrInvalidInput)
		}
		// レベル変更は以後のセッションにのみ影響する。
		// 過去セッションは取り込み時のスナップショットでグレードされ続ける。
		updates["level"] = level
	}
	if len(updates) == 0 {
		return s.playerRepo.FindByID(ctx, s.db, coachID, playerID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.playerRepo.Update(ctx, tx, coachID, playerID, updates)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to update player", "error", err, "player_id", playerID)
		return nil, model.ErrInternalServer
	}

	return s.playerRepo.FindByID(ctx, s.db, coachID, playerID)
}

func (s *playerService) DeletePlayer(ctx context.Context, coachID, playerID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.playerRepo.Delete(ctx, tx, coachID, playerID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		logger.Error("Failed to delete player", "error", err, "player_id", playerID)
		return model.ErrInternalServer
	}

	logger.Info("Player deleted", "player_id", playerID)
	return nil
}
