// internal/handlers/goal_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func setupGoalRouter(mockService *mocks.GoalService) *chi.Mux {
	handler := handlers.NewGoalHandler(mockService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevCoachContextMiddleware) // 開発用認証ミドルウェア
	router.Post("/api/v1/players/{player_id}/goals", handler.PostGoal)
	router.Get("/api/v1/players/{player_id}/goals", handler.GetGoals)
	router.Get("/api/v1/players/{player_id}/goals/{goal_id}", handler.GetGoal)
	router.Delete("/api/v1/players/{player_id}/goals/{goal_id}", handler.CancelGoal)
	return router
}

func TestGoalHandler_PostGoal(t *testing.T) {
	coachID := uuid.New()
	playerID := uuid.New()

	validReqBody := model.PostGoalRequest{
		GoalType:    "avg_exit_velocity",
		TargetValue: 90.0,
		StartDate:   "2025-06-01",
		EndDate:     "2025-08-31",
	}
	expectedGoal := &model.Goal{
		GoalID:      uuid.New(),
		PlayerID:    playerID,
		CoachID:     coachID,
		GoalType:    model.GoalAvgExitVelocity,
		TargetValue: 90.0,
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:      model.GoalStatusActive,
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(mockService *mocks.GoalService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 目標を作成できる",
			body: validReqBody,
			setupMock: func(mockService *mocks.GoalService) {
				mockService.On("CreateGoal", mock.Anything, coachID, playerID, &validReqBody).
					Return(expectedGoal, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "異常系: 目標値が無い",
			body: model.PostGoalRequest{
				GoalType:  "avg_exit_velocity",
				StartDate: "2025-06-01",
				EndDate:   "2025-08-31",
			},
			setupMock:      func(mockService *mocks.GoalService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "異常系: 不正なJSON",
			body: "{not-json",
			setupMock: func(mockService *mocks.GoalService) {
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name: "異常系: 選手が存在しない",
			body: validReqBody,
			setupMock: func(mockService *mocks.GoalService) {
				mockService.On("CreateGoal", mock.Anything, coachID, playerID, &validReqBody).
					Return(nil, model.NewAppError("PLAYER_NOT_FOUND", "選手が見つかりません。", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "PLAYER_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.GoalService)
			tt.setupMock(mockService)
			router := setupGoalRouter(mockService)

			var bodyBytes []byte
			switch b := tt.body.(type) {
			case string:
				bodyBytes = []byte(b)
			default:
				var err error
				bodyBytes, err = json.Marshal(b)
				require.NoError(t, err)
			}

			url := fmt.Sprintf("/api/v1/players/%s/goals", playerID)
			req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(bodyBytes))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Coach-ID", coachID.String())
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				var errResp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.expectedCode, errResp.Error.Code)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestGoalHandler_CancelGoal(t *testing.T) {
	coachID := uuid.New()
	playerID := uuid.New()
	goalID := uuid.New()

	t.Run("正常系: キャンセル成功で204", func(t *testing.T) {
		mockService := new(mocks.GoalService)
		mockService.On("CancelGoal", mock.Anything, coachID, playerID, goalID).
			Return(nil).Once()
		router := setupGoalRouter(mockService)

		url := fmt.Sprintf("/api/v1/players/%s/goals/%s", playerID, goalID)
		req := httptest.NewRequest(http.MethodDelete, url, nil)
		req.Header.Set("X-Coach-ID", coachID.String())
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 終端状態の目標は409", func(t *testing.T) {
		mockService := new(mocks.GoalService)
		mockService.On("CancelGoal", mock.Anything, coachID, playerID, goalID).
			Return(model.NewAppError("GOAL_NOT_ACTIVE", "この目標は既に終了しているためキャンセルできません。", "", model.ErrConflict)).Once()
		router := setupGoalRouter(mockService)

		url := fmt.Sprintf("/api/v1/players/%s/goals/%s", playerID, goalID)
		req := httptest.NewRequest(http.MethodDelete, url, nil)
		req.Header.Set("X-Coach-ID", coachID.String())
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)

		var errResp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "GOAL_NOT_ACTIVE", errResp.Error.Code)
	})

	t.Run("異常系: 認証ヘッダー無しは403", func(t *testing.T) {
		mockService := new(mocks.GoalService)
		router := setupGoalRouter(mockService)

		url := fmt.Sprintf("/api/v1/players/%s/goals/%s", playerID, goalID)
		req := httptest.NewRequest(http.MethodDelete, url, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
