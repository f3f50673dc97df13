package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/model"
)

// RequestRepository は予約申請台帳への追記を担当するインターフェースです
// 台帳は追記のみで、更新・削除は提供しません
type RequestRepository interface {
	Create(ctx context.Context, req *model.Request) error
}

// RequestRepositoryImpl はRequestRepositoryの実装です
type RequestRepositoryImpl struct {
	db *DB
}

// NewRequestRepository は新しいRequestRepositoryを作成します
func NewRequestRepository(db *DB) *RequestRepositoryImpl {
	return &RequestRepositoryImpl{db: db}
}

// Create は予約申請を1行追加し、採番されたIDと作成日時をreqに設定します
// 単一行のINSERTなのでトランザクションは張りません
func (r *RequestRepositoryImpl) Create(ctx context.Context, req *model.Request) error {
	ctx, seg := xray.BeginSubsegment(ctx, "RequestRepository.Create")
	defer seg.Close(nil)

	query := `
		INSERT INTO requests (
			teacher_id,
			user_name,
			contact
		) VALUES (
			$1, $2, $3
		)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		req.TutorID,
		req.UserName,
		req.Contact,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}
