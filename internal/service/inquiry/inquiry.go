package inquiry

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/model"
	"github.com/bilimhub/bilimhub-backend/internal/notifier"
	"github.com/bilimhub/bilimhub-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// Service は講師応募とお問い合わせの受付を担当します
type Service struct {
	applicationRepo repository.ApplicationRepository
	contactRepo     repository.ContactRepository
	dispatcher      notifier.Dispatcher
}

// NewService は新しいServiceを作成します
func NewService(
	applicationRepo repository.ApplicationRepository,
	contactRepo repository.ContactRepository,
	dispatcher notifier.Dispatcher,
) *Service {
	return &Service{
		applicationRepo: applicationRepo,
		contactRepo:     contactRepo,
		dispatcher:      dispatcher,
	}
}

// RegisterTeacher は講師応募を保存し、管理者へ通知します
func (s *Service) RegisterTeacher(ctx context.Context, app model.TeacherApplication) (*model.TeacherApplication, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "InquiryService.RegisterTeacher")
	defer seg.Close(nil)

	app = app.Normalize()
	if err := app.Validate(); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.Create(ctx, &app); err != nil {
		seg.Close(err)
		return nil, &model.StorageError{Op: "create teacher application", Err: err}
	}

	s.notify(ctx, model.NewApplicationNotification(&app), app.ID)
	return &app, nil
}

// SubmitContact はお問い合わせを保存し、管理者へ通知します
func (s *Service) SubmitContact(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "InquiryService.SubmitContact")
	defer seg.Close(nil)

	msg = msg.Normalize()
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, &msg); err != nil {
		seg.Close(err)
		return nil, &model.StorageError{Op: "create contact message", Err: err}
	}

	s.notify(ctx, model.NewContactNotification(&msg), msg.ID)
	return &msg, nil
}

func (s *Service) notify(ctx context.Context, n model.Notification, id int64) {
	if res := s.dispatcher.Notify(ctx, n); res.Failed() {
		log.Ctx(ctx).Warn().
			Err(res.Err).
			Str("type", string(n.Type)).
			Int64("id", id).
			Msg("Failed to dispatch notification")
	}
}
