// internal/repository/session_repository.go
package repository

import (
	"context"
	"errors"

	"swinglab/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	// Create はセッションとスイングを同一トランザクションで一括登録します。
	Create(ctx context.Context, tx *gorm.DB, session *model.Session) error
	FindByID(ctx context.Context, db *gorm.DB, playerID, sessionID uuid.UUID) (*model.Session, error)
	// FindByPlayer は直近 limit 件をセッション日付の昇順で返します。metricType が空なら全種別。
	FindByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID, metricType model.MetricType, limit int) ([]*model.Session, error)
	Delete(ctx context.Context, tx *gorm.DB, playerID, sessionID uuid.UUID) error
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.Session) error {
	// Swings は GORM のアソシエーションで同時にINSERTされる
	result := tx.WithContext(ctx).Create(session)
	return result.Error
}

func (r *gormSessionRepository) FindByID(ctx context.Context, db *gorm.DB, playerID, sessionID uuid.UUID) (*model.Session, error) {
	var session model.Session
	result := db.WithContext(ctx).
		Preload("Swings", func(db *gorm.DB) *gorm.DB {
			// 取り込み順は表示用。集計には影響しない。
			return db.Order("swing_records.swing_number ASC")
		}).
		Where("player_id = ? AND session_id = ?", playerID, sessionID).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &session, nil
}

func (r *gormSessionRepository) FindByPlayer(ctx context.Context, db *gorm.DB, playerID uuid.UUID, metricType model.MetricType, limit int) ([]*model.Session, error) {
	var sessions []*model.Session
	query := db.WithContext(ctx).
		Preload("Swings", func(db *gorm.DB) *gorm.DB {
			return db.Order("swing_records.swing_number ASC")
		}).
		Where("player_id = ?", playerID)
	if metricType != "" {
		query = query.Where("session_type = ?", metricType)
	}
	// 上限を超える場合は最新のセッションを残す。新しい順に limit 件取り、
	// 表示とトレンド計算のために日付昇順へ並べ直す。
	result := query.
		Order("session_date DESC, created_at DESC").
		Limit(limit).
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return sessions, nil
}

func (r *gormSessionRepository) Delete(ctx context.Context, tx *gorm.DB, playerID, sessionID uuid.UUID) error {
	var session model.Session
	result := tx.WithContext(ctx).Where("player_id = ? AND session_id = ?", playerID, sessionID).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.ErrNotFound
		}
		return result.Error
	}

	// スイングはセッションに従属するので物理削除（カスケード）
	if err := tx.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.SwingRecord{}).Error; err != nil {
		return err
	}

	deleteResult := tx.WithContext(ctx).Delete(&session)
	if deleteResult.Error != nil {
		return deleteResult.Error
	}
	return nil
}
