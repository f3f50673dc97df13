// Package logger はzerologのグローバルロガーを設定します
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup はレベルと出力形式を設定します
// format が "console" の場合は人間向けの出力、それ以外はJSONです
func Setup(level, format string) {
	Configure(os.Stderr, level, format)
}

// Configure は出力先を指定してグローバルロガーを設定します
func Configure(w io.Writer, level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Str("service", "bilimhub-api").Logger()
	// リクエストロガーを持たないコンテキストでもlog.Ctxがグローバルロガーに出力する
	zerolog.DefaultContextLogger = &log.Logger
}
