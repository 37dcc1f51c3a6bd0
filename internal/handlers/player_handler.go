// internal/handlers/player_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/service"
	"swinglab/internal/webutil"
)

type PlayerHandler struct {
	service service.PlayerService
	logger  *slog.Logger
}

func NewPlayerHandler(s service.PlayerService, logger *slog.Logger) *PlayerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerHandler{
		service: s,
		logger:  logger,
	}
}

// PostPlayer は新しい選手リソースを作成するためのハンドラ
func (h *PlayerHandler) PostPlayer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostPlayer"))

	coachID, err := middleware.GetCoachIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("coach_id", coachID.String()))

	var req model.PostPlayerRequest
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

	player, err := h.service.CreatePlayer(r.Context(), coachID, &req)
	if err != nil {
		logger.Error("Error creating player in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Player created successfully", slog.String("player_id", player.PlayerID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, player, logger)
}

// GetPlayers は選手リソースの一覧を取得するためのハンドラ
func (h *PlayerHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPlayers"))

	coachID, err := middleware.GetCoachIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	players, err := h.service.ListPlayers(r.Context(), coachID)
	if err != nil {
		logger.Error("Error listing players in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if players == nil {
		players = []*model.Player{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, players, logger)
}

// GetPlayer は特定の選手リソースを取得するためのハンドラ
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPlayer"))

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

	player, err := h.service.GetPlayer(r.Context(), coachID, playerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Player not found", slog.String("player_id", playerID.String()))
		} else {
			logger.Error("Error getting player from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, player, logger)
}

// PatchPlayer は選手リソースの一部を更新するためのハンドラ。
// レベルの変更は以後に取り込まれるセッションにのみ反映されます。
func (h *PlayerHandler) PatchPlayer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchPlayer"))

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

	var req model.PatchPlayerRequest
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

	player, err := h.service.UpdatePlayer(r.Context(), coachID, playerID, &req)
	if err != nil {
		logger.Error("Error updating player in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Player updated successfully", slog.String("player_id", playerID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, player, logger)
}

// DeletePlayer は選手リソースを削除するためのハンドラ
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeletePlayer"))

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

	if err := h.service.DeletePlayer(r.Context(), coachID, playerID); err != nil {
		logger.Error("Error deleting player in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Player deleted successfully", slog.String("player_id", playerID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// parseUUIDParam はURLパスパラメータをUUIDとしてパースします。
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, *model.AppError) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", name+"の形式が正しくありません。", name, model.ErrInvalidInput)
	}
	return id, nil
}
