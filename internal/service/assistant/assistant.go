package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/common/utils"
	"github.com/bilimhub/bilimhub-backend/internal/llm"
	"github.com/bilimhub/bilimhub-backend/internal/model"
	"github.com/bilimhub/bilimhub-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// FallbackReply はバックエンドが使えないときに返す固定の返答です
const FallbackReply = "Трудности — это путь к мудрости! 💪 Я скоро вернусь в строй."

const (
	temperature         = 0.85
	defaultTimeout      = 8 * time.Second
	defaultContextLimit = 10
)

const systemPromptTemplate = `Ты BilimHub Mentor, вдохновляющий ИИ-наставник.
ТВОЙ СТИЛЬ: Энергичный, дружелюбный, используешь эмодзи 🚀.

ТВОИ ЗАДАЧИ:
1. ДЛЯ УЧЕНИКОВ: Помогай найти учителей из списка: %s. Мотивируй их, используй мудрость Абая или цитаты о силе знаний.
2. ДЛЯ УЧИТЕЛЕЙ: Если пишет учитель, давай советы по методике преподавания и вовлечению студентов.

ПРАВИЛА: Отвечай кратко (до 3-4 предложений). В каждом ответе старайся добавить капельку мотивации. Заканчивай ответ вопросом.`

// Config はServiceの設定です。ゼロ値の項目は既定値になります
type Config struct {
	Timeout      time.Duration
	ContextLimit int
}

// Service はAIメンターとの会話を担当します
type Service struct {
	tutorRepo repository.TutorRepository
	completer llm.Completer
	timeout   time.Duration
	limit     int
}

// NewService は新しいServiceを作成します
func NewService(tutorRepo repository.TutorRepository, completer llm.Completer, cfg Config) *Service {
	s := &Service{
		tutorRepo: tutorRepo,
		completer: completer,
		timeout:   cfg.Timeout,
		limit:     cfg.ContextLimit,
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.limit <= 0 {
		s.limit = defaultContextLimit
	}
	return s
}

// Converse はユーザーのメッセージに返答します。失敗することはなく、
// 講師一覧の取得やバックエンド呼び出しに失敗した場合はFallbackReplyを返します
func (s *Service) Converse(ctx context.Context, message string) string {
	ctx, seg := xray.BeginSubsegment(ctx, "AssistantService.Converse")
	defer seg.Close(nil)

	message = strings.TrimSpace(message)
	if message == "" {
		return FallbackReply
	}

	var reply string
	err := utils.RunWithTimeout(ctx, s.timeout, func(ctx context.Context) error {
		snapshot, err := s.tutorRepo.ListSnapshot(ctx, s.limit)
		if err != nil {
			return fmt.Errorf("failed to load teacher snapshot: %w", err)
		}

		r, err := s.completer.Complete(ctx, llm.CompletionRequest{
			System:      BuildSystemPrompt(snapshot),
			User:        message,
			Temperature: temperature,
		})
		if err != nil {
			return err
		}
		reply = r
		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(&model.BackendError{Err: err}).Msg("Assistant backend is unavailable, replying with fallback")
		return FallbackReply
	}

	return reply
}

// BuildSystemPrompt は講師一覧を埋め込んだsystem指示を作成します
func BuildSystemPrompt(snapshot []model.TutorSummary) string {
	items := make([]string, 0, len(snapshot))
	for _, t := range snapshot {
		items = append(items, t.String())
	}
	return fmt.Sprintf(systemPromptTemplate, strings.Join(items, ", "))
}
