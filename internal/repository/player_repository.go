// internal/repository/player_repository.go
package repository

import (
	"context"
	"errors"

	"swinglab/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, player *model.Player) error
	FindByID(ctx context.Context, db *gorm.DB, coachID, playerID uuid.UUID) (*model.Player, error)
	FindByCoach(ctx context.Context, db *gorm.DB, coachID uuid.UUID) ([]*model.Player, error)
	Update(ctx context.Context, tx *gorm.DB, coachID, playerID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, coachID, playerID uuid.UUID) error
}

type gormPlayerRepository struct{}

func NewGormPlayerRepository() PlayerRepository {
	return &gormPlayerRepository{}
}

func (r *gormPlayerRepository) Create(ctx context.Context, tx *gorm.DB, player *model.Player) error {
	result := tx.WithContext(ctx).Create(player)
	return result.Error
}

func (r *gormPlayerRepository) FindByID(ctx context.Context, db *gorm.DB, coachID, playerID uuid.UUID) (*model.Player, error) {
	var player model.Player
	// コーチをまたいだ参照は 404 扱い（所有チェックをクエリに含める）
	result := db.WithContext(ctx).Where("coach_id = ? AND player_id = ?", coachID, playerID).First(&player)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &player, nil
}

func (r *gormPlayerRepository) FindByCoach(ctx context.Context, db *gorm.DB, coachID uuid.UUID) ([]*model.Player, error) {
	var players []*model.Player
	result := db.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Order("name ASC").
		Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}
	return players, nil
}

func (r *gormPlayerRepository) Update(ctx context.Context, tx *gorm.DB, coachID, playerID uuid.UUID, updates map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(&model.Player{}).
		Where("coach_id = ? AND player_id = ?", coachID, playerID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPlayerRepository) Delete(ctx context.Context, tx *gorm.DB, coachID, playerID uuid.UUID) error {
	// 論理削除。セッションと目標は残るが選手経由では到達不能になる。
	result := tx.WithContext(ctx).
		Where("coach_id = ? AND player_id = ?", coachID, playerID).
		Delete(&model.Player{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
