// internal/handlers/session_handler.go
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

type SessionHandler struct {
	service service.SessionService
	logger  *slog.Logger
}

func NewSessionHandler(s service.SessionService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		service: s,
		logger:  logger,
	}
}

// postSessionResponse は取り込み結果と、その取り込みで達成された目標を返します。
type postSessionResponse struct {
	Session       *model.Session            `json:"session"`
	GoalsAchieved []model.GoalAchievedEvent `json:"goals_achieved,omitempty"`
}

// PostSession はセンサーエクスポート1回分のセッションを取り込むためのハンドラ
func (h *SessionHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSession"))

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
	logger = logger.With(slog.String("player_id", playerID.String()))

	var req model.PostSessionRequest
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

	session, events, err := h.service.IngestSession(r.Context(), coachID, playerID, &req)
	if err != nil {
		logger.Error("Error ingesting session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Session ingested successfully",
		slog.String("session_id", session.SessionID.String()),
		slog.Int("swings", len(session.Swings)),
		slog.Int("goals_achieved", len(events)),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, &postSessionResponse{
		Session:       session,
		GoalsAchieved: events,
	}, logger)
}

// GetSession は特定のセッションをスイング記録込みで取得するためのハンドラ
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

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
	sessionID, appErr := parseUUIDParam(r, "session_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	session, err := h.service.GetSession(r.Context(), coachID, playerID, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Session not found", slog.String("session_id", sessionID.String()))
		} else {
			logger.Error("Error getting session from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, session, logger)
}

// DeleteSession はセッションと配下のスイング記録を削除するためのハンドラ
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteSession"))

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
	sessionID, appErr := parseUUIDParam(r, "session_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteSession(r.Context(), coachID, playerID, sessionID); err != nil {
		logger.Error("Error deleting session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Session deleted successfully", slog.String("session_id", sessionID.String()))
	w.WriteHeader(http.StatusNoContent)
}
