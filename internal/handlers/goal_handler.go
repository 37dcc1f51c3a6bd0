// internal/handlers/goal_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/service"
	"swinglab/internal/webutil"
)

type GoalHandler struct {
	service service.GoalService
	logger  *slog.Logger
}

func NewGoalHandler(s service.GoalService, logger *slog.Logger) *GoalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalHandler{
		service: s,
		logger:  logger,
	}
}

// PostGoal は選手に新しい目標を設定するためのハンドラ
func (h *GoalHandler) PostGoal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostGoal"))

	coachID, err := middleware.GetCoachIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	playerID, appErr := parseUUIDParam(r, "player_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.PostGoalRequest
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

	goal, err := h.service.CreateGoal(r.Context(), coachID, playerID, &req)
	if err != nil {
		logger.Error("Error creating goal in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Goal created successfully", slog.String("goal_id", goal.GoalID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, goal, logger)
}

// GetGoals は選手の目標一覧を取得するためのハンドラ
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetGoals"))

	coachID, err := middleware.GetCoachIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	playerID, appErr := parseUUIDParam(r, "player_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	goals, err := h.service.ListGoals(r.Context(), coachID, playerID)
	if err != nil {
		logger.Error("Error listing goals in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if goals == nil {
		goals = []*model.Goal{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, goals, logger)
}

// GetGoal は特定の目標を取得するためのハンドラ
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetGoal"))

	coachID, err := middleware.GetCoachIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	playerID, appErr := parseUUIDParam(r, "player_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	goalID, appErr := parseUUIDParam(r, "goal_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	goal, err := h.service.GetGoal(r.Context(), coachID, playerID, goalID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Goal not found", slog.String("goal_id", goalID.String()))
		} else {
			logger.Error("Error getting goal from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, goal, logger)
}

// CancelGoal は active な目標を cancelled に遷移させるためのハンドラ。
// 終端状態の目標に対しては 409 を返します。
func (h *GoalHandler) CancelGoal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CancelGoal"))

	coachID, err := middleware.GetCoachIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	playerID, appErr := parseUUIDParam(r, "player_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	goalID, appErr := parseUUIDParam(r, "goal_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.CancelGoal(r.Context(), coachID, playerID, goalID); err != nil {
		logger.Warn("Error cancelling goal in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Goal cancelled successfully", slog.String("goal_id", goalID.String()))
	w.WriteHeader(http.StatusNoContent)
}
