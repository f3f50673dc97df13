package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// Execer はスキーマ適用に必要な最小限のインターフェースです
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// EnsureSchema はテーブルが存在しない場合に作成します
// 既存のテーブルやデータには手を加えません
func EnsureSchema(ctx context.Context, db Execer) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Info().Msg("Database schema ensured")
	return nil
}
