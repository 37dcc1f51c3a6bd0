package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// コーチの基本情報
type Coach struct {
	CoachID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"coach_id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"unique;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// GORM用のリレーション (JSONには含めない)
	Players []Player `gorm:"foreignKey:CoachID" json:"-"`
}

func (Coach) TableName() string {
	return "coaches"
}

type ContextKey string

const (
	CoachIDKey ContextKey = "coachID"
)

// RegisterRequest は新規登録APIのリクエストボディの構造体 (DTO)
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// CoachResponse はクライアントに返すコーチ情報の構造体
type CoachResponse struct {
	CoachID   uuid.UUID `json:"coach_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
