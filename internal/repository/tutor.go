package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/model"
)

// TutorRepository は講師ディレクトリの読み取りを担当するインターフェースです
type TutorRepository interface {
	List(ctx context.Context, subject string) ([]model.Tutor, error)
	ListSnapshot(ctx context.Context, limit int) ([]model.TutorSummary, error)
	GetNameByID(ctx context.Context, tutorID int64) (string, error)
}

// TutorRepositoryImpl はTutorRepositoryの実装です
type TutorRepositoryImpl struct {
	db *DB
}

// NewTutorRepository は新しいTutorRepositoryを作成します
func NewTutorRepository(db *DB) *TutorRepositoryImpl {
	return &TutorRepositoryImpl{
		db: db,
	}
}

const tutorColumns = `id, name, subject, price, rating, experience, is_online, image, description`

// List は講師一覧をオンライン優先・評価の高い順で取得します
// subjectが空またはセンチネル値の場合は全件を返します
func (r *TutorRepositoryImpl) List(ctx context.Context, subject string) ([]model.Tutor, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "TutorRepository.List")
	defer seg.Close(nil)

	query := `SELECT ` + tutorColumns + ` FROM teachers`
	var args []interface{}
	if !model.IsAllSubjects(subject) {
		query += ` WHERE subject = $1`
		args = append(args, subject)
	}
	query += ` ORDER BY is_online DESC, rating DESC, id ASC`

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to query teachers: %w", err)
	}
	defer rows.Close()

	tutors := make([]model.Tutor, 0)
	for rows.Next() {
		var tutor model.Tutor
		if err := rows.StructScan(&tutor); err != nil {
			seg.Close(err)
			return nil, fmt.Errorf("failed to scan teacher row: %w", err)
		}
		tutors = append(tutors, tutor)
	}

	if err = rows.Err(); err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("error iterating teacher rows: %w", err)
	}

	return tutors, nil
}

// ListSnapshot はAIアシスタント用に講師の要約を最大limit件取得します
func (r *TutorRepositoryImpl) ListSnapshot(ctx context.Context, limit int) ([]model.TutorSummary, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "TutorRepository.ListSnapshot")
	defer seg.Close(nil)

	query := `
		SELECT name, subject, price
		FROM teachers
		ORDER BY is_online DESC, rating DESC, id ASC
		LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to query teacher snapshot: %w", err)
	}
	defer rows.Close()

	var summaries []model.TutorSummary
	for rows.Next() {
		var s model.TutorSummary
		if err := rows.StructScan(&s); err != nil {
			seg.Close(err)
			return nil, fmt.Errorf("failed to scan teacher snapshot: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("error iterating teacher snapshot: %w", err)
	}

	return summaries, nil
}

// GetNameByID は指定された講師IDから講師名を取得します
// 該当行がない場合はmodel.ErrTutorNotFoundを返します
func (r *TutorRepositoryImpl) GetNameByID(ctx context.Context, tutorID int64) (string, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "TutorRepository.GetNameByID")
	defer seg.Close(nil)

	query := `
		SELECT name
		FROM teachers
		WHERE id = $1`

	var name string
	err := r.db.GetContext(ctx, &name, query, tutorID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("teacher %d: %w", tutorID, model.ErrTutorNotFound)
	}
	if err != nil {
		seg.Close(err)
		return "", fmt.Errorf("failed to get teacher name: %w", err)
	}

	return name, nil
}
