package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/model"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const telegramChannel = "telegram"

// TelegramConfig はTelegramDispatcherの設定です
type TelegramConfig struct {
	Token   string
	AdminID int64
	// APIEndpoint は空の場合tgbotapi.APIEndpointを使います
	APIEndpoint string
	HTTPClient  *http.Client
}

// messageSender は*tgbotapi.BotAPIのうち送信に必要な部分です
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramDispatcher はTelegramボット経由で管理者チャットに通知を送ります
type TelegramDispatcher struct {
	sender  messageSender
	adminID int64
}

// NewTelegramDispatcher はボットを初期化します。トークンの検証(getMe)のため通信が発生します
func NewTelegramDispatcher(cfg TelegramConfig) (*TelegramDispatcher, error) {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	return newTelegramDispatcher(bot, cfg.AdminID), nil
}

func newTelegramDispatcher(sender messageSender, adminID int64) *TelegramDispatcher {
	return &TelegramDispatcher{
		sender:  sender,
		adminID: adminID,
	}
}

// Notify は通知をMarkdownで描画して管理者チャットに送信します
func (d *TelegramDispatcher) Notify(ctx context.Context, n model.Notification) model.DispatchResult {
	ctx, seg := xray.BeginSubsegment(ctx, "TelegramDispatcher.Notify")
	defer seg.Close(nil)

	if err := ctx.Err(); err != nil {
		return model.DispatchFailedWith(telegramChannel, err)
	}

	msg := tgbotapi.NewMessage(d.adminID, RenderMarkdown(n))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := d.sender.Send(msg); err != nil {
		seg.Close(err)
		return model.DispatchFailedWith(telegramChannel, err)
	}

	return model.DispatchSucceeded()
}

// RenderMarkdown は通知をTelegramのMarkdown(v1)で描画します
// ユーザー入力の値はエスケープし、書式が壊れて送信エラーになるのを防ぎます
func RenderMarkdown(n model.Notification) string {
	var b strings.Builder
	b.WriteString("*")
	b.WriteString(tgbotapi.EscapeText(tgbotapi.ModeMarkdown, n.Title))
	b.WriteString("*")
	if len(n.Fields) > 0 {
		b.WriteString("\n")
	}
	for _, f := range n.Fields {
		b.WriteString("\n")
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(tgbotapi.EscapeText(tgbotapi.ModeMarkdown, f.Value))
	}
	return b.String()
}
