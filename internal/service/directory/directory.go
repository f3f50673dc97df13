package directory

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/model"
	"github.com/bilimhub/bilimhub-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// Service は講師ディレクトリの参照を担当します
type Service struct {
	tutorRepo repository.TutorRepository
}

// NewService は新しいServiceを作成します
func NewService(tutorRepo repository.TutorRepository) *Service {
	return &Service{tutorRepo: tutorRepo}
}

// ListTutors は講師一覧を返します。subjectが空か「Все」なら全件です
// 結果は常に非nilのスライスです
func (s *Service) ListTutors(ctx context.Context, subject string) ([]model.Tutor, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "DirectoryService.ListTutors")
	defer seg.Close(nil)

	tutors, err := s.tutorRepo.List(ctx, subject)
	if err != nil {
		seg.Close(err)
		return nil, &model.StorageError{Op: "list teachers", Err: err}
	}
	if tutors == nil {
		tutors = []model.Tutor{}
	}

	log.Ctx(ctx).Debug().Str("subject", subject).Int("count", len(tutors)).Msg("Listed teachers")
	return tutors, nil
}
