// internal/handlers/report_handler.go
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

type ReportHandler struct {
	service service.ReportService
	logger  *slog.Logger
}

func NewReportHandler(s service.ReportService, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service: s,
		logger:  logger,
	}
}

// GetSessionReport は1セッション分のレポートを返すためのハンドラ。
// レポートは保存済みスイングからその都度導出されます。
func (h *ReportHandler) GetSessionReport(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSessionReport"))

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

	report, err := h.service.GetSessionReport(r.Context(), coachID, playerID, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Session not found for report", slog.String("session_id", sessionID.String()))
		} else {
			logger.Error("Error building session report", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, report, logger)
}

// GetProgressionReport は選手の時系列レポートを返すためのハンドラ。
// metric_type クエリパラメータでセッション種別を指定します。
func (h *ReportHandler) GetProgressionReport(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgressionReport"))

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

	metricType := model.MetricType(r.URL.Query().Get("metric_type"))
	if !metricType.IsValid() {
		appErr := model.NewAppError("INVALID_METRIC_TYPE", "metric_typeにはbat_speedまたはexit_velocityを指定してください。", "metric_type", model.ErrInvalidMetricType)
		webutil.HandleError(w, logger, appErr)
		return
	}

	report, err := h.service.GetProgressionReport(r.Context(), coachID, playerID, metricType)
	if err != nil {
		logger.Error("Error building progression report", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, report, logger)
}
