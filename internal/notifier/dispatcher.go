// Package notifier は管理者チャンネルへの通知送信を担当します
package notifier

import (
	"context"

	"github.com/bilimhub/bilimhub-backend/internal/model"
	"github.com/rs/zerolog/log"
)

// Dispatcher は固定の管理者チャンネルに通知を送ります
// 送信失敗はエラー値ではなくDispatchResultで返し、呼び出し側の処理を失敗させません
type Dispatcher interface {
	Notify(ctx context.Context, n model.Notification) model.DispatchResult
}

// LogDispatcher は送信先が設定されていない場合に通知をログへ出力するだけのDispatcherです
type LogDispatcher struct{}

// NewLogDispatcher は新しいLogDispatcherを作成します
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Notify(ctx context.Context, n model.Notification) model.DispatchResult {
	log.Ctx(ctx).Info().
		Str("type", string(n.Type)).
		Str("text", n.Text()).
		Msg("Notification channel is not configured, notification logged only")
	return model.DispatchResult{Status: model.DispatchSkipped}
}
