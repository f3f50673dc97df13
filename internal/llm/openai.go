// Package llm は生成AIバックエンドへの薄いクライアントを提供します
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-xray-sdk-go/xray"
	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion はバックエンドが空の応答を返したことを表します
var ErrEmptyCompletion = errors.New("empty completion")

// CompletionRequest は1回分の問い合わせです。履歴は持ちません
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
}

// Completer は生成AIバックエンドのインターフェースです
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// OpenAIConfig はOpenAIClientの設定です
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient はX-Rayでラップしたクライアントを渡すためのものです
	HTTPClient *http.Client
}

// OpenAIClient はOpenAI互換のChat Completions APIを使うCompleterです
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient は新しいOpenAIClientを作成します
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Complete はsystem指示とユーザーメッセージを送り、最初の候補の本文を返します
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "OpenAIClient.Complete")
	defer seg.Close(nil)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		seg.Close(err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
