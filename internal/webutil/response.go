// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"swinglab/internal/model"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
// これがアプリケーションのエラーハンドリングの中心となります。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError

	if errors.As(err, &appErr) {
		// AppError の場合、その詳細情報をレスポンスとして使用
		errResp = model.APIErrorResponse{Error: appErr.Detail}
	} else {
		// 予期せぬエラーはログに詳細を残し、クライアントには汎用メッセージを返す
		logger.Error("Unhandled error", "error", err)

		errResp = model.APIErrorResponse{
			Error: model.ErrorDetail{
				Code:    "INTERNAL_SERVER_ERROR",
				Message: "サーバー内部でエラーが発生しました。",
			},
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	// AppErrorの場合は、ラップされたエラーで判定する
	if errors.As(err, &appErr) {
		err = appErr.Unwrap()
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidMetricType),
		errors.Is(err, model.ErrNoBenchmarkForLevel):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrForbidden) || errors.Is(err, model.ErrCoachNotFound):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR", "message":"レスポンス生成中にエラーが発生しました。"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	var fields []string
	var messages []string

	for _, err := range errs {
		field := err.Field()
		message := err.Translate(Trans)
		if message == "" {
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		fields = append(fields, field)
		messages = append(messages, message)
	}

	return model.NewAppError(
		"VALIDATION_ERROR",
		strings.Join(messages, "; "),
		strings.Join(fields, ","),
		model.ErrInvalidInput,
	)
}
