// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	App struct {
		ProgressionLimit     int `mapstructure:"progression_limit"`      // 時系列レポートの最大セッション数
		GoalSweepIntervalMin int `mapstructure:"goal_sweep_interval_min"` // 期限切れ掃引の間隔（分）
	} `mapstructure:"app"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	JWT struct {
		SecretKey   string `mapstructure:"secret_key"`
		ExpiryHours int    `mapstructure:"expiry_hours"`
	} `mapstructure:"jwt"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`
	Mailer struct {
		Type string `mapstructure:"type"` // log / smtp / ses
	} `mapstructure:"mailer"`
	SMTP SMTPConfig `mapstructure:"smtp"`
	SES  SESConfig  `mapstructure:"ses"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // static_credentials / iam_role
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数での上書き (例: APP_DATABASE_URL)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.App.ProgressionLimit <= 0 {
		Cfg.App.ProgressionLimit = DefaultProgressionLimit
	}
	if Cfg.App.GoalSweepIntervalMin <= 0 {
		Cfg.App.GoalSweepIntervalMin = DefaultGoalSweepIntervalMin
	}
	if Cfg.JWT.ExpiryHours <= 0 {
		Cfg.JWT.ExpiryHours = DefaultJWTExpiryHours
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	// Auth.Enabled のデフォルト値を設定 (未設定なら有効にする)
	if !viper.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		Cfg.Auth.Enabled = true
	}
	if !viper.IsSet("metrics.enabled") {
		Cfg.Metrics.Enabled = true
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Progression Limit: %d", Cfg.App.ProgressionLimit)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}
