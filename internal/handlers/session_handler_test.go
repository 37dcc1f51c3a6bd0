// internal/handlers/session_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swinglab/internal/handlers"
	"swinglab/internal/middleware"
	"swinglab/internal/model"
	"swinglab/internal/service/mocks"
)

func setupSessionRouter(mockService *mocks.SessionService) *chi.Mux {
	handler := handlers.NewSessionHandler(mockService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevCoachContextMiddleware)
	router.Post("/api/v1/players/{player_id}/sessions", handler.PostSession)
	router.Get("/api/v1/players/{player_id}/sessions/{session_id}", handler.GetSession)
	return router
}

func TestSessionHandler_PostSession(t *testing.T) {
	coachID := uuid.New()
	playerID := uuid.New()

	ev := 92.5
	validReqBody := model.PostSessionRequest{
		SessionType: "exit_velocity",
		SessionDate: "2025-06-15",
		Category:    "Practice",
		Swings:      []model.SwingInput{{ExitVelocity: &ev}},
	}

	t.Run("正常系: 取り込み成功で201と達成目標を返す", func(t *testing.T) {
		mockService := new(mocks.SessionService)
		session := &model.Session{
			SessionID:   uuid.New(),
			PlayerID:    playerID,
			SessionType: model.MetricExitVelocity,
			PlayerLevel: model.LevelHighSchool,
		}
		events := []model.GoalAchievedEvent{{GoalID: uuid.New(), PlayerID: playerID}}
		mockService.On("IngestSession", mock.Anything, coachID, playerID, &validReqBody).
			Return(session, events, nil).Once()
		router := setupSessionRouter(mockService)

		bodyBytes, err := json.Marshal(validReqBody)
		require.NoError(t, err)
		url := fmt.Sprintf("/api/v1/players/%s/sessions", playerID)
		req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Coach-ID", coachID.String())
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Session       *model.Session            `json:"session"`
			GoalsAchieved []model.GoalAchievedEvent `json:"goals_achieved"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, session.SessionID, resp.Session.SessionID)
		assert.Len(t, resp.GoalsAchieved, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 不正なセッション種別は400", func(t *testing.T) {
		mockService := new(mocks.SessionService)
		router := setupSessionRouter(mockService)

		body := map[string]interface{}{
			"session_type": "launch_angle",
			"session_date": "2025-06-15",
		}
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		url := fmt.Sprintf("/api/v1/players/%s/sessions", playerID)
		req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Coach-ID", coachID.String())
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "VALIDATION_ERROR", errResp.Error.Code)
	})

	t.Run("異常系: player_idがUUIDでない", func(t *testing.T) {
		mockService := new(mocks.SessionService)
		router := setupSessionRouter(mockService)

		bodyBytes, err := json.Marshal(validReqBody)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/players/not-a-uuid/sessions", bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Coach-ID", coachID.String())
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "INVALID_URL_PARAM", errResp.Error.Code)
	})
}

func TestSessionHandler_GetSession(t *testing.T) {
	coachID := uuid.New()
	playerID := uuid.New()
	sessionID := uuid.New()

	t.Run("異常系: 存在しないセッションは404", func(t *testing.T) {
		mockService := new(mocks.SessionService)
		mockService.On("GetSession", mock.Anything, coachID, playerID, sessionID).
			Return(nil, model.ErrNotFound).Once()
		router := setupSessionRouter(mockService)

		url := fmt.Sprintf("/api/v1/players/%s/sessions/%s", playerID, sessionID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		req.Header.Set("X-Coach-ID", coachID.String())
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
