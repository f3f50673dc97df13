package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bilimhub/bilimhub-backend/internal/common/database"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	DB          database.Config
	AutoMigrate bool

	Telegram struct {
		BotToken string
		AdminID  int64
	}

	OpenAI struct {
		APIKey  string
		Model   string
		BaseURL string
	}

	Chat struct {
		Timeout      time.Duration
		ContextLimit int
	}

	SFN struct {
		StateMachineARN string
	}

	Log struct {
		Level  string
		Format string
	}

	EnableTracing bool
}

// LoadConfig は.envと環境変数から設定を読み込みます
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var errs []error

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "3000"),
		CORSOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		DB: database.Config{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvAsIntOrDefault("DB_PORT", 5432),
			UserName: getEnvOrDefault("DB_USERNAME", "bilimhub"),
			Password: getEnvOrDefault("DB_PASSWORD", "password"),
			DBName:   getEnvOrDefault("DB_NAME", "bilimhub"),
			SSLMode:  os.Getenv("DB_SSL_MODE"),
		},
		AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE"),
	}

	cfg.ShutdownTimeout = getEnvAsDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second, &errs)

	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if adminID := strings.TrimSpace(os.Getenv("ADMIN_ID")); adminID != "" {
		id, err := strconv.ParseInt(adminID, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("ADMIN_ID must be an integer chat id: %w", err))
		}
		cfg.Telegram.AdminID = id
	} else if cfg.Telegram.BotToken != "" {
		errs = append(errs, errors.New("ADMIN_ID is required when TELEGRAM_BOT_TOKEN is set"))
	}

	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAI.Model = getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	cfg.OpenAI.BaseURL = os.Getenv("OPENAI_BASE_URL")

	cfg.Chat.Timeout = getEnvAsDurationOrDefault("CHAT_TIMEOUT", 8*time.Second, &errs)
	cfg.Chat.ContextLimit = getEnvAsIntOrDefault("CHAT_CONTEXT_LIMIT", 10)

	cfg.SFN.StateMachineARN = os.Getenv("SFN_STATE_MACHINE_ARN")

	cfg.Log.Level = getEnvOrDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvOrDefault("LOG_FORMAT", "json")

	// 環境変数[BILIMHUB_ENABLE_TRACING]を見てトレースを有効にする。対応しているTracingはAWS_XRAYのみ。
	// 環境変数[AWS_XRAY_SDK_DISABLED]がtrueの場合は必ずトレースを無効にする。
	enableKey := os.Getenv("BILIMHUB_ENABLE_TRACING")
	if !sdkDisabled() && (strings.ToLower(enableKey) == "true" || enableKey == "1") {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "FALSE")
		cfg.EnableTracing = true
	} else {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")
		cfg.EnableTracing = false
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	log.Debug().Str("key", key).Msg("Environment variable is not set, using default value")
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Environment variable is not an integer, using default value")
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s must be a positive duration, got %q", key, value))
		return defaultValue
	}
	return d
}

func getEnvAsBool(key string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return value == "true" || value == "1"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Check if SDK is disabled
func sdkDisabled() bool {
	disableKey := os.Getenv("AWS_XRAY_SDK_DISABLED")
	return strings.ToLower(disableKey) == "true"
}
