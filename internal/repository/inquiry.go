package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/model"
)

// ApplicationRepository は講師応募の永続化を担当するインターフェースです
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.TeacherApplication) error
}

// ContactRepository はお問い合わせの永続化を担当するインターフェースです
type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
}

// ApplicationRepositoryImpl はApplicationRepositoryの実装です
type ApplicationRepositoryImpl struct {
	db *DB
}

// NewApplicationRepository は新しいApplicationRepositoryを作成します
func NewApplicationRepository(db *DB) *ApplicationRepositoryImpl {
	return &ApplicationRepositoryImpl{db: db}
}

// Create は講師応募を1行追加します
func (r *ApplicationRepositoryImpl) Create(ctx context.Context, app *model.TeacherApplication) error {
	ctx, seg := xray.BeginSubsegment(ctx, "ApplicationRepository.Create")
	defer seg.Close(nil)

	query := `
		INSERT INTO teacher_applications (
			first_name,
			last_name,
			subject,
			phone
		) VALUES (
			:first_name,
			:last_name,
			:subject,
			:phone
		)
		RETURNING id, created_at`

	if err := insertReturning(ctx, r.db, query, app, &app.ID, &app.CreatedAt); err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to create teacher application: %w", err)
	}

	return nil
}

// ContactRepositoryImpl はContactRepositoryの実装です
type ContactRepositoryImpl struct {
	db *DB
}

// NewContactRepository は新しいContactRepositoryを作成します
func NewContactRepository(db *DB) *ContactRepositoryImpl {
	return &ContactRepositoryImpl{db: db}
}

// Create はお問い合わせを1行追加します
func (r *ContactRepositoryImpl) Create(ctx context.Context, msg *model.ContactMessage) error {
	ctx, seg := xray.BeginSubsegment(ctx, "ContactRepository.Create")
	defer seg.Close(nil)

	query := `
		INSERT INTO contact_messages (
			name,
			email,
			phone,
			subject,
			message
		) VALUES (
			:name,
			:email,
			:phone,
			:subject,
			:message
		)
		RETURNING id, created_at`

	if err := insertReturning(ctx, r.db, query, msg, &msg.ID, &msg.CreatedAt); err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

// insertReturning は名前付きINSERTを実行し、RETURNING句の1行をdestにスキャンします
func insertReturning(ctx context.Context, db *DB, query string, arg interface{}, dest ...interface{}) error {
	rows, err := db.NamedQueryContext(ctx, query, arg)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return fmt.Errorf("insert returned no rows")
	}
	if err := rows.Scan(dest...); err != nil {
		return err
	}
	return rows.Err()
}
