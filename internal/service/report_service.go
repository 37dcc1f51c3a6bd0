// internal/service/report_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swinglab/internal/analytics"
	"swinglab/internal/metrics"
	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/repository"
)

type ReportService interface {
	GetSessionReport(ctx context.Context, coachID, playerID, sessionID uuid.UUID) (*model.ReportPayload, error)
	GetProgressionReport(ctx context.Context, coachID, playerID uuid.UUID, metricType model.MetricType) (*model.ProgressionReport, error)
}

type reportService struct {
	db               *gorm.DB
	playerRepo       repository.PlayerRepository
	sessionRepo      repository.SessionRepository
	progressionLimit int
}

func NewReportService(db *gorm.DB, playerRepo repository.PlayerRepository, sessionRepo repository.SessionRepository, progressionLimit int) ReportService {
	return &reportService{
		db:               db,
		playerRepo:       playerRepo,
		sessionRepo:      sessionRepo,
		progressionLimit: progressionLimit,
	}
}

// GetSessionReport は保存済みスイングから要約・ゾーン集計・グレードを再計算して返します。
// レポートは永続化しません。同じセッションからは常に同じレポートが導出されます。
func (s *reportService) GetSessionReport(ctx context.Context, coachID, playerID, sessionID uuid.UUID) (*model.ReportPayload, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := s.playerRepo.FindByID(ctx, s.db, coachID, playerID); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindByID(ctx, s.db, playerID, sessionID)
	if err != nil {
		return nil, err
	}

	payload, err := s.assemble(session)
	if err != nil {
		logger.Error("Failed to assemble session report", "error", err, "session_id", sessionID)
		return nil, model.ErrInternalServer
	}

	metrics.ReportRequests.WithLabelValues("session").Inc()
	return payload, nil
}

// GetProgressionReport は指定計測種別のセッションを日付昇順に並べた時系列レポートを返します。
func (s *reportService) GetProgressionReport(ctx context.Context, coachID, playerID uuid.UUID, metricType model.MetricType) (*model.ProgressionReport, error) {
	logger := middleware.GetLogger(ctx)

	if !metricType.IsValid() {
		return nil, model.NewAppError("INVALID_METRIC_TYPE", "計測種別が不正です。", "metric_type", model.ErrInvalidMetricType)
	}
	if _, err := s.playerRepo.FindByID(ctx, s.db, coachID, playerID); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.FindByPlayer(ctx, s.db, playerID, metricType, s.progressionLimit)
	if err != nil {
		logger.Error("Failed to load sessions for progression", "error", err, "player_id", playerID)
		return nil, model.ErrInternalServer
	}

	report := &model.ProgressionReport{
		PlayerID:   playerID,
		MetricType: metricType,
		Sessions:   make([]model.ReportPayload, 0, len(sessions)),
	}

	grades := make([]*int, 0, len(sessions))
	for _, session := range sessions {
		payload, err := s.assemble(session)
		if err != nil {
			logger.Error("Failed to assemble report in progression", "error", err, "session_id", session.SessionID)
			return nil, model.ErrInternalServer
		}
		report.Sessions = append(report.Sessions, *payload)
		grades = append(grades, payload.Grade)
	}
	report.Trend = analytics.Trend(grades)

	metrics.ReportRequests.WithLabelValues("progression").Inc()
	return report, nil
}

func (s *reportService) assemble(session *model.Session) (*model.ReportPayload, error) {
	records := make([]*model.SwingRecord, len(session.Swings))
	for i := range session.Swings {
		records[i] = &session.Swings[i]
	}

	summary, err := analytics.Aggregate(session.SessionType, records)
	if err != nil {
		// 取り込み時に種別は検証済みなので、ここに来るのはデータ破損時のみ
		return nil, err
	}

	// ゾーン集計は打球速度セッションのみ対象
	var zones map[int]*float64
	if session.SessionType == model.MetricExitVelocity {
		zones = analytics.AggregateByZone(records)
	}

	payload, err := analytics.AssembleReport(summary, zones, analytics.SessionMeta{
		SessionID:   session.SessionID,
		PlayerID:    session.PlayerID,
		SessionDate: session.SessionDate,
		Category:    session.Category,
		PlayerLevel: session.PlayerLevel,
	})
	if err != nil {
		return nil, err
	}
	return &payload, nil
}
