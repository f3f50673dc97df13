package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "CORS_ALLOWED_ORIGINS", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USERNAME",
	"DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_AUTO_MIGRATE", "SHUTDOWN_TIMEOUT",
	"TELEGRAM_BOT_TOKEN", "ADMIN_ID", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"CHAT_TIMEOUT", "CHAT_CONTEXT_LIMIT", "SFN_STATE_MACHINE_ARN", "LOG_LEVEL", "LOG_FORMAT",
	"BILIMHUB_ENABLE_TRACING", "AWS_XRAY_SDK_DISABLED",
}

// clearEnv はテスト中の環境変数を空にします
func clearEnv(t *testing.T) {
	t.Helper()
	// .envが存在しない一時ディレクトリで実行する
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Model)
	assert.Equal(t, 8*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, 10, cfg.Chat.ContextLimit)
	assert.Empty(t, cfg.Telegram.BotToken)
	assert.Empty(t, cfg.SFN.StateMachineARN)
	assert.False(t, cfg.EnableTracing)
	assert.Equal(t, "TRUE", os.Getenv("AWS_XRAY_SDK_DISABLED"))
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DATABASE_URL", "postgres://u:p@db.example/bilimhub")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("ADMIN_ID", "-100123")
	t.Setenv("CHAT_TIMEOUT", "3s")
	t.Setenv("CHAT_CONTEXT_LIMIT", "5")
	t.Setenv("BILIMHUB_ENABLE_TRACING", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "postgres://u:p@db.example/bilimhub", cfg.DB.URL)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, int64(-100123), cfg.Telegram.AdminID)
	assert.Equal(t, 3*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, 5, cfg.Chat.ContextLimit)
	assert.True(t, cfg.EnableTracing)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "トークンがあるのに管理者IDなし",
			env:  map[string]string{"TELEGRAM_BOT_TOKEN": "token"},
		},
		{
			name: "管理者IDが数値でない",
			env:  map[string]string{"ADMIN_ID": "@admin"},
		},
		{
			name: "タイムアウトが不正",
			env:  map[string]string{"CHAT_TIMEOUT": "soon"},
		},
		{
			name: "タイムアウトが負",
			env:  map[string]string{"SHUTDOWN_TIMEOUT": "-1s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_TracingForcedOffBySDKFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("BILIMHUB_ENABLE_TRACING", "true")
	t.Setenv("AWS_XRAY_SDK_DISABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.EnableTracing)
}
