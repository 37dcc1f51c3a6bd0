// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrCoachNotFound  = errors.New("coach not found or invalid")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用

	// 集計・グレード計算のエラー
	ErrInvalidMetricType   = errors.New("invalid or mixed metric type")
	ErrNoBenchmarkForLevel = errors.New("no benchmark for metric and level")
)

// AppError はクライアントに返す詳細情報を持つアプリケーションエラーです。
// Err には上記のセンチネルエラーをラップし、HTTPステータスの判定に使います。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

// ErrorDetail はエラーレスポンスのボディに含める情報です。
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"` // バリデーションエラーの対象フィールド
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Err: err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Code + ": " + e.Err.Error()
	}
	return e.Detail.Code + ": " + e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
