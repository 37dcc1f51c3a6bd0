// internal/service/report_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swinglab/internal/model"
	"swinglab/internal/repository"
	"swinglab/internal/repository/mocks"
)

func exitVeloSession(playerID uuid.UUID, date time.Time, level model.PlayerLevel, values ...float64) *model.Session {
	session := &model.Session{
		SessionID:   uuid.New(),
		PlayerID:    playerID,
		SessionType: model.MetricExitVelocity,
		SessionDate: date,
		PlayerLevel: level,
	}
	for i, v := range values {
		v := v
		session.Swings = append(session.Swings, model.SwingRecord{
			SwingID:      uuid.New(),
			SessionID:    session.SessionID,
			MetricType:   model.MetricExitVelocity,
			SwingNumber:  i + 1,
			ExitVelocity: &v,
		})
	}
	return session
}

func Test_reportService_GetSessionReport(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	playerID := uuid.New()
	player := &model.Player{PlayerID: playerID, CoachID: coachID, Level: model.LevelHighSchool}

	t.Run("正常系: 要約とグレードを含むレポートを返す", func(t *testing.T) {
		db := setupTestDBSession()
		playerRepo := new(mocks.PlayerRepository)
		sessionRepo := new(mocks.SessionRepository)

		// 高校レベル打球速度: avg 84.0 はアンカー(70/80/88)の補間で65
		session := exitVeloSession(playerID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), model.LevelHighSchool, 82.0, 86.0)
		zone := 5
		session.Swings[0].StrikeZone = &zone

		playerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), coachID, playerID).
			Return(player, nil).Once()
		sessionRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), playerID, session.SessionID).
			Return(session, nil).Once()

		service := NewReportService(db, playerRepo, sessionRepo, 50)
		report, err := service.GetSessionReport(ctx, coachID, playerID, session.SessionID)

		require.NoError(t, err)
		assert.Equal(t, 2, report.Summary.Count)
		require.NotNil(t, report.Summary.Avg)
		assert.Equal(t, 84.0, *report.Summary.Avg)
		require.NotNil(t, report.Grade)
		assert.Equal(t, 65, *report.Grade)
		assert.Equal(t, model.LabelAboveAverage, report.Label)

		// ゾーンは13キー全てが存在し、打席の無いゾーンは nil
		require.Len(t, report.ZoneAverages, 13)
		require.NotNil(t, report.ZoneAverages[5])
		assert.Equal(t, 82.0, *report.ZoneAverages[5])
		assert.Nil(t, report.ZoneAverages[1])
	})

	t.Run("正常系: スイングの無いセッションは ungraded", func(t *testing.T) {
		db := setupTestDBSession()
		playerRepo := new(mocks.PlayerRepository)
		sessionRepo := new(mocks.SessionRepository)

		session := exitVeloSession(playerID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), model.LevelHighSchool)

		playerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), coachID, playerID).
			Return(player, nil).Once()
		sessionRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), playerID, session.SessionID).
			Return(session, nil).Once()

		service := NewReportService(db, playerRepo, sessionRepo, 50)
		report, err := service.GetSessionReport(ctx, coachID, playerID, session.SessionID)

		require.NoError(t, err)
		assert.Equal(t, 0, report.Summary.Count)
		assert.Nil(t, report.Summary.Avg)
		assert.Nil(t, report.Grade)
	})

	t.Run("異常系: セッションが存在しない", func(t *testing.T) {
		db := setupTestDBSession()
		playerRepo := new(mocks.PlayerRepository)
		sessionRepo := new(mocks.SessionRepository)
		sessionID := uuid.New()

		playerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), coachID, playerID).
			Return(player, nil).Once()
		sessionRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), playerID, sessionID).
			Return(nil, model.ErrNotFound).Once()

		service := NewReportService(db, playerRepo, sessionRepo, 50)
		_, err := service.GetSessionReport(ctx, coachID, playerID, sessionID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_reportService_GetProgressionReport(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	playerID := uuid.New()
	player := &model.Player{PlayerID: playerID, CoachID: coachID, Level: model.LevelHighSchool}

	t.Run("正常系: 直近2セッションのグレード上昇で trend は up", func(t *testing.T) {
		db := setupTestDBSession()
		playerRepo := new(mocks.PlayerRepository)
		sessionRepo := new(mocks.SessionRepository)

		// avg 80.0 → 50, avg 84.0 → 65
		older := exitVeloSession(playerID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), model.LevelHighSchool, 80.0)
		newer := exitVeloSession(playerID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), model.LevelHighSchool, 84.0)

		playerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), coachID, playerID).
			Return(player, nil).Once()
		sessionRepo.On("FindByPlayer", ctx, mock.AnythingOfType("*gorm.DB"), playerID, model.MetricExitVelocity, 50).
			Return([]*model.Session{older, newer}, nil).Once()

		service := NewReportService(db, playerRepo, sessionRepo, 50)
		report, err := service.GetProgressionReport(ctx, coachID, playerID, model.MetricExitVelocity)

		require.NoError(t, err)
		require.Len(t, report.Sessions, 2)
		assert.Equal(t, model.TrendUp, report.Trend)
	})

	t.Run("正常系: セッションが1件なら trend は stable", func(t *testing.T) {
		db := setupTestDBSession()
		playerRepo := new(mocks.PlayerRepository)
		sessionRepo := new(mocks.SessionRepository)

		only := exitVeloSession(playerID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), model.LevelHighSchool, 80.0)

		playerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), coachID, playerID).
			Return(player, nil).Once()
		sessionRepo.On("FindByPlayer", ctx, mock.AnythingOfType("*gorm.DB"), playerID, model.MetricExitVelocity, 50).
			Return([]*model.Session{only}, nil).Once()

		service := NewReportService(db, playerRepo, sessionRepo, 50)
		report, err := service.GetProgressionReport(ctx, coachID, playerID, model.MetricExitVelocity)

		require.NoError(t, err)
		assert.Equal(t, model.TrendStable, report.Trend)
	})

	t.Run("正常系: 上限超過時は最新セッションが残り trend も直近2件から算出", func(t *testing.T) {
		db := setupTestDBSession()
		require.NoError(t, db.AutoMigrate(&model.Session{}, &model.SwingRecord{}))
		playerRepo := new(mocks.PlayerRepository)
		sessionRepo := repository.NewGormSessionRepository()

		longPlayerID := uuid.New()
		longPlayer := &model.Player{PlayerID: longPlayerID, CoachID: coachID, Level: model.LevelHighSchool}

		// avg 70.0 → 20, 80.0 → 50, 84.0 → 65。上限2で最古の 70.0 が落ちる。
		dates := []time.Time{
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		}
		for i, avg := range []float64{70.0, 80.0, 84.0} {
			session := exitVeloSession(longPlayerID, dates[i], model.LevelHighSchool, avg)
			require.NoError(t, sessionRepo.Create(ctx, db, session))
		}

		playerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), coachID, longPlayerID).
			Return(longPlayer, nil).Once()

		service := NewReportService(db, playerRepo, sessionRepo, 2)
		report, err := service.GetProgressionReport(ctx, coachID, longPlayerID, model.MetricExitVelocity)

		require.NoError(t, err)
		require.Len(t, report.Sessions, 2)
		assert.Equal(t, dates[1], report.Sessions[0].SessionDate)
		assert.Equal(t, dates[2], report.Sessions[1].SessionDate)
		// 50 → 65 の上昇
		assert.Equal(t, model.TrendUp, report.Trend)
	})

	t.Run("異常系: 不正な計測種別", func(t *testing.T) {
		db := setupTestDBSession()
		playerRepo := new(mocks.PlayerRepository)
		sessionRepo := new(mocks.SessionRepository)

		service := NewReportService(db, playerRepo, sessionRepo, 50)
		_, err := service.GetProgressionReport(ctx, coachID, playerID, model.MetricType("distance"))
		assert.ErrorIs(t, err, model.ErrInvalidMetricType)
	})
}
