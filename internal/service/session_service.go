// internal/service/session_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swinglab/internal/analytics"
	"swinglab/internal/metrics"
	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/repository"
)

type SessionService interface {
	IngestSession(ctx context.Context, coachID, playerID uuid.UUID, req *model.PostSessionRequest) (*model.Session, []model.GoalAchievedEvent, error)
	GetSession(ctx context.Context, coachID, playerID, sessionID uuid.UUID) (*model.Session, error)
	DeleteSession(ctx context.Context, coachID, playerID, sessionID uuid.UUID) error
}

type sessionService struct {
	db          *gorm.DB
	playerRepo  repository.PlayerRepository
	sessionRepo repository.SessionRepository
	goalRepo    repository.GoalRepository
	coachRepo   repository.CoachRepository
	mailer      Mailer
}

func NewSessionService(db *gorm.DB, playerRepo repository.PlayerRepository, sessionRepo repository.SessionRepository, goalRepo repository.GoalRepository, coachRepo repository.CoachRepository, mailer Mailer) SessionService {
	return &sessionService{
		db:          db,
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		goalRepo:    goalRepo,
		coachRepo:   coachRepo,
		mailer:      mailer,
	}
}

// IngestSession はセンサーからエクスポートされた1セッション分のスイングを取り込みます。
// 取り込みと同一トランザクションで、その選手の active な目標を評価します。
// 達成した目標は条件付きUPDATEで achieved に遷移させるため、
// 同時に複数セッションが取り込まれても達成が記録されるのは一度だけです。
func (s *sessionService) IngestSession(ctx context.Context, coachID, playerID uuid.UUID, req *model.PostSessionRequest) (*model.Session, []model.GoalAchievedEvent, error) {
	logger := middleware.GetLogger(ctx)

	metricType := model.MetricType(req.SessionType)
	if !metricType.IsValid() {
		return nil, nil, model.NewAppError("INVALID_METRIC_TYPE", "セッション種別が不正です。", "session_type", model.ErrInvalidMetricType)
	}

	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return nil, nil, model.NewAppError("VALIDATION_ERROR", "セッション日付はYYYY-MM-DD形式で入力してください。", "session_date", model.ErrInvalidInput)
	}

	var createdSession *model.Session
	var achievedEvents []model.GoalAchievedEvent

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 選手を取得し、現在のレベルをセッションにスナップショットする
		player, err := s.playerRepo.FindByID(ctx, tx, coachID, playerID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PLAYER_NOT_FOUND", "選手が見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Failed to find player for ingestion", "error", err)
			return model.ErrInternalServer
		}

		// 2. セッションとスイング記録を構築する
		session := &model.Session{
			SessionID:   uuid.New(),
			PlayerID:    playerID,
			SessionType: metricType,
			SessionDate: sessionDate,
			Category:    req.Category,
			PlayerLevel: player.Level,
		}
		for i, in := range req.Swings {
			session.Swings = append(session.Swings, model.SwingRecord{
				SwingID:       uuid.New(),
				SessionID:     session.SessionID,
				MetricType:    metricType,
				SwingNumber:   i + 1,
				BatSpeed:      in.BatSpeed,
				AttackAngle:   in.AttackAngle,
				TimeToContact: in.TimeToContact,
				ExitVelocity:  in.ExitVelocity,
				LaunchAngle:   in.LaunchAngle,
				Distance:      in.Distance,
				StrikeZone:    in.StrikeZone,
				PitchSpeed:    in.PitchSpeed,
				HorizAngle:    in.HorizAngle,
				Tags:          in.Tags,
				Notes:         in.Notes,
			})
		}

		if err := s.sessionRepo.Create(ctx, tx, session); err != nil {
			logger.Error("Failed to create session", "error", err)
			return model.ErrInternalServer
		}

		// 3. 要約統計を算出し、active な目標を評価する
		records := make([]*model.SwingRecord, len(session.Swings))
		for i := range session.Swings {
			records[i] = &session.Swings[i]
		}
		summary, err := analytics.Aggregate(metricType, records)
		if err != nil {
			return model.NewAppError("INVALID_METRIC_TYPE", "スイング記録の計測種別がセッションと一致しません。", "swings", err)
		}

		goals, err := s.goalRepo.FindActiveByPlayer(ctx, tx, playerID)
		if err != nil {
			logger.Error("Failed to load active goals", "error", err)
			return model.ErrInternalServer
		}
		for _, goal := range goals {
			achievement, ok := analytics.EvaluateGoal(goal, summary, session.SessionID, sessionDate)
			if !ok {
				continue
			}
			// 条件付きUPDATE。他のセッションが先に達成していた場合は claimed=false になる。
			claimed, err := s.goalRepo.MarkAchieved(ctx, tx, achievement.GoalID, achievement.AchievedSessionID, achievement.AchievedDate)
			if err != nil {
				logger.Error("Failed to mark goal achieved", "error", err, "goal_id", goal.GoalID)
				return model.ErrInternalServer
			}
			if !claimed {
				logger.Debug("Goal already transitioned, skipping", "goal_id", goal.GoalID)
				continue
			}
			achievedEvents = append(achievedEvents, model.GoalAchievedEvent{
				GoalID:            goal.GoalID,
				PlayerID:          playerID,
				GoalType:          goal.GoalType,
				TargetValue:       goal.TargetValue,
				AchievedValue:     achievement.AchievedValue,
				AchievedSessionID: achievement.AchievedSessionID,
				AchievedDate:      achievement.AchievedDate,
			})
		}

		createdSession = session
		return nil
	})

	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInternalServer) {
			return nil, nil, err
		}
		logger.Error("Transaction failed for IngestSession", "error", err)
		return nil, nil, model.ErrInternalServer
	}

	metrics.SessionsIngested.WithLabelValues(string(metricType)).Inc()
	metrics.SwingsIngested.Add(float64(len(createdSession.Swings)))

	// 達成通知はコミット後に送る。送信失敗で取り込み自体は失敗させない。
	for _, event := range achievedEvents {
		metrics.GoalsAchieved.Inc()
		s.notifyGoalAchieved(ctx, coachID, event)
	}

	logger.Info("Session ingested",
		"session_id", createdSession.SessionID,
		"player_id", playerID,
		"metric_type", metricType,
		"swings", len(createdSession.Swings),
		"goals_achieved", len(achievedEvents),
	)
	return createdSession, achievedEvents, nil
}

func (s *sessionService) GetSession(ctx context.Context, coachID, playerID, sessionID uuid.UUID) (*model.Session, error) {
	// 所有チェック。他のコーチの選手のセッションは見えない
	if _, err := s.playerRepo.FindByID(ctx, s.db, coachID, playerID); err != nil {
		return nil, err
	}
	return s.sessionRepo.FindByID(ctx, s.db, playerID, sessionID)
}

func (s *sessionService) DeleteSession(ctx context.Context, coachID, playerID, sessionID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	if _, err := s.playerRepo.FindByID(ctx, s.db, coachID, playerID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.sessionRepo.Delete(ctx, tx, playerID, sessionID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		logger.Error("Failed to delete session", "error", err, "session_id", sessionID)
		return model.ErrInternalServer
	}

	logger.Info("Session deleted", "session_id", sessionID, "player_id", playerID)
	return nil
}

func (s *sessionService) notifyGoalAchieved(ctx context.Context, coachID uuid.UUID, event model.GoalAchievedEvent) {
	logger := middleware.GetLogger(ctx)

	coach, err := s.coachRepo.FindByID(ctx, s.db, coachID)
	if err != nil {
		logger.Warn("Goal achieved but coach lookup failed, skipping notification", "error", err, "goal_id", event.GoalID)
		return
	}

	subject := "【SwingLab】目標達成のお知らせ"
	body := fmt.Sprintf(
		"設定した目標が達成されました。\n\n目標: %s\n目標値: %.1f\n達成値: %.1f\n達成日: %s\n",
		event.GoalType, event.TargetValue, event.AchievedValue, event.AchievedDate.Format("2006-01-02"),
	)
	if err := s.mailer.Send(ctx, coach.Email, subject, body); err != nil {
		logger.Warn("Failed to send goal achievement notification", "error", err, "goal_id", event.GoalID)
	}
}
