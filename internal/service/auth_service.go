package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"swinglab/internal/config"
	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/repository"
)

type AuthService interface {
	RegisterCoach(ctx context.Context, req *model.RegisterRequest) (*model.Coach, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetCoach(ctx context.Context, coachID uuid.UUID) (*model.Coach, error)
}

type authService struct {
	db        *gorm.DB
	coachRepo repository.CoachRepository
	cfg       *config.Config
}

// NewAuthService は AuthService の新しいインスタンスを生成します
func NewAuthService(db *gorm.DB, coachRepo repository.CoachRepository, cfg *config.Config) AuthService {
	return &authService{
		db:        db,
		coachRepo: coachRepo,
		cfg:       cfg,
	}
}

// RegisterCoach は新しいコーチアカウントを登録します
func (s *authService) RegisterCoach(ctx context.Context, req *model.RegisterRequest) (*model.Coach, error) {
	logger := middleware.GetLogger(ctx)
	var newCoach *model.Coach

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Emailでの重複チェック
		_, err := s.coachRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already exists", "email", req.Email)
			return model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}

		// パスワードのハッシュ化
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "パスワードの処理中にエラーが発生しました。", "", err)
		}

		coach := &model.Coach{
			CoachID:      uuid.New(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
		}

		if err := s.coachRepo.Create(ctx, tx, coach); err != nil {
			// Create内で重複エラーが検知された場合 (レースコンディション対策)
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during coach creation (race condition)", "error", err)
				return model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)
			}
			logger.Error("Failed to create coach in DB", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "アカウントの作成に失敗しました。", "", err)
		}
		newCoach = coach
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Coach registered", "coach_id", newCoach.CoachID, "email", newCoach.Email)
	return newCoach, nil
}

// Login はメールアドレスとパスワードを検証し、アクセストークンを発行します
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	coach, err := s.coachRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: email not found", "email", req.Email)
			// メールアドレスの存在を悟られないよう、パスワード不一致と同じメッセージを返す
			return nil, model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrForbidden)
		}
		logger.Error("Error finding coach by email", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "coach_id", coach.CoachID)
		return nil, model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrForbidden)
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    config.AppName,
		Subject:   coach.CoachID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.cfg.JWT.ExpiryHours) * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "coach_id", coach.CoachID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	logger.Info("Login successful", "coach_id", coach.CoachID)
	return &model.LoginResponse{AccessToken: signedToken}, nil
}

// GetCoach は指定されたIDのコーチを取得します
func (s *authService) GetCoach(ctx context.Context, coachID uuid.UUID) (*model.Coach, error) {
	logger := middleware.GetLogger(ctx)
	coach, err := s.coachRepo.FindByID(ctx, s.db, coachID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Coach not found", "coach_id", coachID.String())
			return nil, model.NewAppError("COACH_NOT_FOUND", "コーチが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding coach by ID", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return coach, nil
}
