package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/common/config"
	"github.com/bilimhub/bilimhub-backend/internal/common/database"
	"github.com/bilimhub/bilimhub-backend/internal/common/logger"
	"github.com/bilimhub/bilimhub-backend/internal/common/utils"
	"github.com/bilimhub/bilimhub-backend/internal/event"
	"github.com/bilimhub/bilimhub-backend/internal/handler"
	"github.com/bilimhub/bilimhub-backend/internal/llm"
	"github.com/bilimhub/bilimhub-backend/internal/notifier"
	"github.com/bilimhub/bilimhub-backend/internal/repository"
	"github.com/bilimhub/bilimhub-backend/internal/service/assistant"
	"github.com/bilimhub/bilimhub-backend/internal/service/booking"
	"github.com/bilimhub/bilimhub-backend/internal/service/directory"
	"github.com/bilimhub/bilimhub-backend/internal/service/inquiry"
	"github.com/rs/zerolog/log"
)

const (
	projectName = "bilimhub-api"
	// 外部API(Telegram, OpenAI)呼び出しのHTTPタイムアウト
	outboundTimeout = 15 * time.Second
)

func main() {
	// 設定読み込み前は既定のロガーで出力する
	logger.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	// 設定の読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(utils.GetStackWithError(err)).Msg("Failed to load config")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	// X-Ray設定
	if cfg.EnableTracing {
		if err := xray.Configure(xray.Config{
			DaemonAddr:     "127.0.0.1:2000", // X-Rayデーモンのアドレス
			ServiceVersion: "1.0.0",
		}); err != nil {
			log.Error().Err(err).Msg("Failed to configure X-Ray")
			// X-Ray設定失敗時はデフォルトの設定を使用
			if configErr := xray.Configure(xray.Config{}); configErr != nil {
				log.Fatal().Err(configErr).Msg("Failed to configure default X-Ray settings")
			}
		}
		os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	}

	// DB接続
	db, err := database.NewDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(utils.GetStackWithError(err)).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.EnsureSchema(context.Background(), db); err != nil {
			log.Fatal().Err(utils.GetStackWithError(err)).Msg("Failed to apply database schema")
		}
	}

	// 外部APIはX-Rayでラップしたクライアントで呼び出す
	httpClient := &http.Client{Timeout: outboundTimeout}
	if cfg.EnableTracing {
		httpClient = xray.Client(httpClient)
	}

	// リポジトリとサービスの初期化
	repoDB := repository.NewDB(db.DB)
	tutorRepo := repository.NewTutorRepository(repoDB)

	dispatcher := newDispatcher(cfg, httpClient)
	publisher := newPublisher(cfg)

	completer := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:     cfg.OpenAI.APIKey,
		Model:      cfg.OpenAI.Model,
		BaseURL:    cfg.OpenAI.BaseURL,
		HTTPClient: httpClient,
	})

	h := handler.NewHandler(
		directory.NewService(tutorRepo),
		assistant.NewService(tutorRepo, completer, assistant.Config{
			Timeout:      cfg.Chat.Timeout,
			ContextLimit: cfg.Chat.ContextLimit,
		}),
		booking.NewService(repository.NewRequestRepository(repoDB), tutorRepo, dispatcher, publisher),
		inquiry.NewService(repository.NewApplicationRepository(repoDB), repository.NewContactRepository(repoDB), dispatcher),
	)

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(h, handler.RouterOptions{
			Logger:         log.Logger,
			AllowedOrigins: cfg.CORSOrigins,
			EnableTracing:  cfg.EnableTracing,
			TracingName:    projectName,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// シグナルハンドリングの設定
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("BilimHub API server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// シグナルまたはエラーの待機
	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
	case err := <-errChan:
		log.Fatal().Err(utils.GetStackWithError(err)).Msg("Server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown did not complete")
	}
	log.Info().Msg("Server stopped")
}

// newDispatcher はTelegramの設定があればTelegramへ、なければログへ通知します
func newDispatcher(cfg *config.Config, httpClient *http.Client) notifier.Dispatcher {
	if cfg.Telegram.BotToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN is not set, notifications are written to the log only")
		return notifier.NewLogDispatcher()
	}

	d, err := notifier.NewTelegramDispatcher(notifier.TelegramConfig{
		Token:      cfg.Telegram.BotToken,
		AdminID:    cfg.Telegram.AdminID,
		HTTPClient: httpClient,
	})
	if err != nil {
		// 通知はベストエフォートなので起動は続ける
		log.Error().Err(err).Msg("Failed to initialize Telegram bot, notifications are written to the log only")
		return notifier.NewLogDispatcher()
	}
	return d
}

// newPublisher はステートマシンが設定されている場合のみStep Functionsへの発行者を返します
func newPublisher(cfg *config.Config) event.Publisher {
	if cfg.SFN.StateMachineARN == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load AWS config, booking events are disabled")
		return nil
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return event.NewSFNPublisher(sfn.NewFromConfig(awsCfg), cfg.SFN.StateMachineARN)
}
