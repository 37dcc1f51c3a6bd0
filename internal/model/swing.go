// internal/model/swing.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// MetricType はスイング計測の種別です。セッションはどちらか一方のみを含みます。
type MetricType string

const (
	MetricBatSpeed     MetricType = "bat_speed"     // バットスピードセンサー
	MetricExitVelocity MetricType = "exit_velocity" // 打球速度・角度計測器
)

func (m MetricType) IsValid() bool {
	return m == MetricBatSpeed || m == MetricExitVelocity
}

// SwingRecord は取り込み後は不変の1スイング分の計測値です。
// 計測種別により使われるフィールドが異なり、未計測の値は nil のままです。
// SwingNumber はセッション内の取り込み順で、表示のみに使います（集計には影響しない）。
type SwingRecord struct {
	SwingID   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"swing_id"`
	SessionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	MetricType MetricType `gorm:"type:varchar(20);not null" json:"metric_type"`
	SwingNumber int       `gorm:"not null" json:"swing_number"`

	// バットスピード系
	BatSpeed      *float64 `json:"bat_speed,omitempty"`       // mph
	AttackAngle   *float64 `json:"attack_angle,omitempty"`    // 度
	TimeToContact *float64 `json:"time_to_contact,omitempty"` // 秒

	// 打球速度系
	ExitVelocity *float64 `json:"exit_velocity,omitempty"` // mph
	LaunchAngle  *float64 `json:"launch_angle,omitempty"`  // 度
	Distance     *float64 `json:"distance,omitempty"`      // フィート
	StrikeZone   *int     `json:"strike_zone,omitempty"`   // 1-13、nil=ゾーン外/不明
	PitchSpeed   *float64 `json:"pitch_speed,omitempty"`   // mph
	HorizAngle   *float64 `json:"horiz_angle,omitempty"`   // 打球方向（度）

	Tags  []string `gorm:"serializer:json" json:"tags,omitempty"`
	Notes string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (SwingRecord) TableName() string {
	return "swing_records"
}

// スイング1件分の取り込みDTO。数値はパーサ側で検証済みの前提です。
type SwingInput struct {
	BatSpeed      *float64 `json:"bat_speed" validate:"omitempty,gt=0"`
	AttackAngle   *float64 `json:"attack_angle"`
	TimeToContact *float64 `json:"time_to_contact" validate:"omitempty,gt=0"`
	ExitVelocity  *float64 `json:"exit_velocity" validate:"omitempty,gte=0"`
	LaunchAngle   *float64 `json:"launch_angle"`
	Distance      *float64 `json:"distance" validate:"omitempty,gte=0"`
	StrikeZone    *int     `json:"strike_zone" validate:"omitempty,min=1,max=13"`
	PitchSpeed    *float64 `json:"pitch_speed" validate:"omitempty,gt=0"`
	HorizAngle    *float64 `json:"horiz_angle"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
}
