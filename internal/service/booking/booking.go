package booking

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/event"
	"github.com/bilimhub/bilimhub-backend/internal/model"
	"github.com/bilimhub/bilimhub-backend/internal/notifier"
	"github.com/bilimhub/bilimhub-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// Service は予約申請パイプラインを担当します
// 検証 → 台帳へ追記 → 講師名の解決 → 通知 → 応答 の順に処理します
type Service struct {
	requestRepo repository.RequestRepository
	tutorRepo   repository.TutorRepository
	dispatcher  notifier.Dispatcher
	publisher   event.Publisher
}

// NewService は新しいServiceを作成します。publisherはnilでも構いません
func NewService(
	requestRepo repository.RequestRepository,
	tutorRepo repository.TutorRepository,
	dispatcher notifier.Dispatcher,
	publisher event.Publisher,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		tutorRepo:   tutorRepo,
		dispatcher:  dispatcher,
		publisher:   publisher,
	}
}

// SubmitRequest は予約申請を受け付けます
// 失敗として返すのは*model.ValidationErrorと*model.StorageErrorのみで、
// 台帳への書き込みが成功した時点で予約は成立します
func (s *Service) SubmitRequest(ctx context.Context, in model.BookingInput) (*model.BookingResult, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "BookingService.SubmitRequest")
	defer seg.Close(nil)

	startTime := time.Now()

	// 入力の検証。失敗時はストレージに触れない
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// 台帳へ追記
	req := in.ToRequest()
	if err := s.requestRepo.Create(ctx, req); err != nil {
		seg.Close(err)
		return nil, &model.StorageError{Op: "create request", Err: err}
	}

	logger := log.Ctx(ctx).With().
		Int64("request_id", req.ID).
		Int64("teacher_id", req.TutorID).
		Logger()

	// 講師名を解決。見つからない場合もコミット済みなのでプレースホルダで続行する
	tutorName := s.resolveTutorName(ctx, req.TutorID)

	// 通知を送信。失敗は記録して破棄する
	dispatch := s.dispatcher.Notify(ctx, model.NewBookingNotification(req, tutorName))
	if dispatch.Failed() {
		logger.Warn().Err(dispatch.Err).Msg("Failed to dispatch booking notification, booking is kept")
	}

	// ワークフローへイベントを発行。こちらも失敗は破棄する
	if s.publisher != nil {
		bookingEvent := model.BookingEvent{
			RequestID: req.ID,
			TutorID:   req.TutorID,
			TutorName: tutorName,
			UserName:  req.UserName,
			Contact:   req.Contact,
			CreatedAt: req.CreatedAt,
		}
		if err := s.publisher.PublishBooking(ctx, bookingEvent); err != nil {
			logger.Warn().Err(err).Msg("Failed to publish booking event")
		}
	}

	logger.Info().
		Str("dispatch", string(dispatch.Status)).
		Dur("duration", time.Since(startTime)).
		Msg("Booking request accepted")

	return &model.BookingResult{
		RequestID: req.ID,
		TutorName: tutorName,
		Dispatch:  dispatch,
	}, nil
}

func (s *Service) resolveTutorName(ctx context.Context, tutorID int64) string {
	name, err := s.tutorRepo.GetNameByID(ctx, tutorID)
	switch {
	case errors.Is(err, model.ErrTutorNotFound):
		log.Ctx(ctx).Info().Int64("teacher_id", tutorID).Msg("Booking references unknown teacher, using placeholder name")
		return model.TutorPlaceholderName
	case err != nil:
		log.Ctx(ctx).Error().Err(err).Int64("teacher_id", tutorID).Msg("Failed to resolve teacher name, using placeholder name")
		return model.TutorPlaceholderName
	case name == "":
		return model.TutorPlaceholderName
	}
	return name
}
