// internal/model/player.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerLevel は選手の競技レベルです。グレード算出のベンチマーク選択に使います。
type PlayerLevel string

const (
	LevelYouth        PlayerLevel = "youth"
	LevelHighSchool   PlayerLevel = "high_school"
	LevelCollege      PlayerLevel = "college"
	LevelProfessional PlayerLevel = "professional" // 独立・傘下を区別しない
)

// IsValid は閉じた列挙に含まれるかを判定します。
func (l PlayerLevel) IsValid() bool {
	switch l {
	case LevelYouth, LevelHighSchool, LevelCollege, LevelProfessional:
		return true
	}
	return false
}

// Player は計測対象の選手を表します
type Player struct {
	PlayerID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"player_id"`
	CoachID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	BirthYear int            `json:"birth_year"`
	Level     PlayerLevel    `gorm:"type:varchar(20);not null" json:"level"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Sessions []Session `gorm:"foreignKey:PlayerID" json:"-"`
	Goals    []Goal    `gorm:"foreignKey:PlayerID" json:"-"`
}

func (Player) TableName() string {
	return "players"
}

// 選手作成リクエストDTO
type PostPlayerRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	BirthYear int    `json:"birth_year" validate:"omitempty,min=1950,max=2100"`
	Level     string `json:"level" validate:"required,oneof=youth high_school college professional"`
}

// 選手更新（部分）リクエストDTO
type PatchPlayerRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Level *string `json:"level,omitempty" validate:"omitempty,oneof=youth high_school college professional"`
}
