// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/service"
	"swinglab/internal/webutil"
)

type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(s service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		service: s,
		logger:  logger,
	}
}

// Register は新しいコーチアカウントを作成するためのハンドラ
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Register"))

	var req model.RegisterRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := validateRequest(logger, req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	coach, err := h.service.RegisterCoach(r.Context(), &req)
	if err != nil {
		logger.Error("Error registering coach in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Coach registered successfully", slog.String("coach_id", coach.CoachID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, &model.CoachResponse{
		CoachID:   coach.CoachID,
		Name:      coach.Name,
		Email:     coach.Email,
		CreatedAt: coach.CreatedAt,
	}, logger)
}

// Login は資格情報を検証してアクセストークンを発行するためのハンドラ
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := validateRequest(logger, req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Me は認証済みコーチ自身の情報を返すためのハンドラ
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Me"))

	coachID, err := middleware.GetCoachIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	coach, err := h.service.GetCoach(r.Context(), coachID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, &model.CoachResponse{
		CoachID:   coach.CoachID,
		Name:      coach.Name,
		Email:     coach.Email,
		CreatedAt: coach.CreatedAt,
	}, logger)
}

// validateRequest はリクエストDTOのバリデーションを行い、違反を AppError にして返します。
func validateRequest(logger *slog.Logger, req interface{}) *model.AppError {
	err := webutil.Validator.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
		return webutil.NewValidationErrorResponse(validationErrors)
	}

	logger.Error("Unexpected error during validation", slog.Any("error", err))
	return model.NewAppError("INTERNAL_SERVER_ERROR", "バリデーション処理中にエラーが発生しました。", "", err)
}
