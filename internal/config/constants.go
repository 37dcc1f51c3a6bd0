// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "swinglab"
	AppVersion = "0.3.1"
)

// デフォルト設定値
const (
	DefaultServerPort           = ":8080"
	DefaultLogLevel             = "info"
	DefaultProgressionLimit     = 50 // 時系列レポートで遡る最大セッション数
	DefaultGoalSweepIntervalMin = 60
	DefaultJWTExpiryHours       = 24
)
