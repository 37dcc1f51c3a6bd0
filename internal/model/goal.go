// internal/model/goal.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalType は目標の対象となる集計値です。
type GoalType string

const (
	GoalAvgExitVelocity GoalType = "avg_exit_velocity"
	GoalMaxExitVelocity GoalType = "max_exit_velocity"
	GoalAvgBatSpeed     GoalType = "avg_bat_speed"
	GoalMaxBatSpeed     GoalType = "max_bat_speed"
)

func (g GoalType) IsValid() bool {
	switch g {
	case GoalAvgExitVelocity, GoalMaxExitVelocity, GoalAvgBatSpeed, GoalMaxBatSpeed:
		return true
	}
	return false
}

// MetricType は目標が参照するセッション計測種別を返します。
func (g GoalType) MetricType() MetricType {
	switch g {
	case GoalAvgExitVelocity, GoalMaxExitVelocity:
		return MetricExitVelocity
	case GoalAvgBatSpeed, GoalMaxBatSpeed:
		return MetricBatSpeed
	}
	return ""
}

// GoalStatus は目標のライフサイクル状態です。active 以外は全て終端状態です。
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusAchieved  GoalStatus = "achieved"
	GoalStatusMissed    GoalStatus = "missed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// Goal はコーチが選手に設定する数値目標です。
// 「目標値以上に到達する」目標のみで、下回りを維持する目標はありません。
// MilestoneAwarded は achieved への遷移時に一度だけ true になります。
type Goal struct {
	GoalID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"goal_id"`
	PlayerID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"player_id"`
	CoachID           uuid.UUID  `gorm:"type:uuid;not null" json:"coach_id"`
	GoalType          GoalType   `gorm:"type:varchar(30);not null" json:"goal_type"`
	TargetValue       float64    `gorm:"not null" json:"target_value"`
	StartDate         time.Time  `gorm:"not null" json:"start_date"`
	EndDate           time.Time  `gorm:"not null;index" json:"end_date"`
	Status            GoalStatus `gorm:"type:varchar(20);not null;default:active;index" json:"status"`
	AchievedDate      *time.Time `json:"achieved_date,omitempty"`
	AchievedSessionID *uuid.UUID `gorm:"type:uuid" json:"achieved_session_id,omitempty"` // 参照のみ（所有ではない）
	MilestoneAwarded  bool       `gorm:"not null;default:false" json:"milestone_awarded"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Goal) TableName() string {
	return "goals"
}

// 目標作成リクエストDTO
type PostGoalRequest struct {
	GoalType    string  `json:"goal_type" validate:"required,oneof=avg_exit_velocity max_exit_velocity avg_bat_speed max_bat_speed"`
	TargetValue float64 `json:"target_value" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
}
