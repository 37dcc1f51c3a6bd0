// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session は1回の計測セッションを表します。
// スイングは全てセッションと同じ MetricType であること（単一計測種別の不変条件）。
// PlayerLevel は取り込み時点の選手レベルのスナップショットで、
// 後から選手のレベルを変更しても過去セッションのグレードは変わりません。
type Session struct {
	SessionID   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"session_id"`
	PlayerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"player_id"`
	SessionType MetricType     `gorm:"type:varchar(20);not null" json:"session_type"`
	SessionDate time.Time      `gorm:"not null;index" json:"session_date"`
	Category    string         `json:"category,omitempty"` // Practice / Live ABs など
	PlayerLevel PlayerLevel    `gorm:"type:varchar(20);not null" json:"player_level"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)。セッション削除でスイングも削除します。
	Swings []SwingRecord `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"swings,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

// セッション取り込みリクエストDTO。パース済みのスイング行をそのまま受け取ります。
type PostSessionRequest struct {
	SessionType string       `json:"session_type" validate:"required,oneof=bat_speed exit_velocity"`
	SessionDate string       `json:"session_date" validate:"required,datetime=2006-01-02"`
	Category    string       `json:"category" validate:"omitempty,max=50"`
	Swings      []SwingInput `json:"swings" validate:"dive"`
}
