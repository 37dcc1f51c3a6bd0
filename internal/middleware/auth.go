package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"swinglab/internal/config"
	"swinglab/internal/model"
	"swinglab/internal/webutil"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証するミドルウェア
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			// 1. Authorization ヘッダーからトークンを取得
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}
			tokenString := headerParts[1]

			// 2. JWTをパースし、署名と有効期限を検証
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// 署名アルゴリズムが期待通り(HS256)かチェック
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, model.NewAppError("UNEXPECTED_SIGNING_METHOD", "予期しない署名アルゴリズムです。", "", errors.New("unexpected signing method"))
				}
				return []byte(cfg.JWT.SecretKey), nil
			})

			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// 3. トークンが有効で、クレームが取得可能な場合
			if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
				// 4. ペイロードから subject (コーチID) を取得
				subject, err := claims.GetSubject()
				if err != nil {
					logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
					appErr := model.NewAppError("INVALID_TOKEN", "トークンにユーザー情報が含まれていません。", "", model.ErrForbidden)
					webutil.HandleError(w, logger, appErr)
					return
				}

				coachID, err := uuid.Parse(subject)
				if err != nil {
					logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", subject, "error", err)
					appErr := model.NewAppError("INVALID_TOKEN", "トークンのユーザー情報が不正です。", "", model.ErrForbidden)
					webutil.HandleError(w, logger, appErr)
					return
				}

				// リクエストコンテキストにコーチIDをセット
				ctx := context.WithValue(r.Context(), model.CoachIDKey, coachID)

				next.ServeHTTP(w, r.WithContext(ctx))
			} else {
				// このルートを通ることは稀だが、念のため
				logger.Warn("JWT auth failed: Unknown claims type or invalid token")
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
			}
		})
	}
}

func GetCoachIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.CoachIDKey).(uuid.UUID)
	if !ok {
		// ミドルウェアが正しく動作していない場合にのみ到達する
		return uuid.Nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrInternalServer)
	}
	return value, nil
}
