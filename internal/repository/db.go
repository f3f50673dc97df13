package repository

import (
	"context"
	"database/sql"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// DB はX-Rayのサブセグメントを張るsqlx.DBのラッパーです
// 接続の生成と破棄はdatabaseパッケージが担当します
type DB struct {
	*sqlx.DB
}

// NewDB は既存の接続をラップします
func NewDB(conn *sqlx.DB) *DB {
	return &DB{DB: conn}
}

// QueryxContext wraps sqlx.DB.QueryxContext with X-Ray tracing
func (db *DB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "DB.Queryx")
	if seg == nil {
		return db.DB.QueryxContext(ctx, query, args...)
	}
	defer seg.Close(nil)

	addQueryMetadata(seg, query)

	rows, err := db.DB.QueryxContext(ctx, query, args...)
	if err != nil {
		seg.Close(err)
		return nil, err
	}

	return rows, nil
}

// QueryRowxContext wraps sqlx.DB.QueryRowxContext with X-Ray tracing
func (db *DB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	ctx, seg := xray.BeginSubsegment(ctx, "DB.QueryRowx")
	if seg == nil {
		return db.DB.QueryRowxContext(ctx, query, args...)
	}
	defer seg.Close(nil)

	addQueryMetadata(seg, query)

	return db.DB.QueryRowxContext(ctx, query, args...)
}

// GetContext wraps sqlx.DB.GetContext with X-Ray tracing
func (db *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, seg := xray.BeginSubsegment(ctx, "DB.Get")
	if seg == nil {
		return db.DB.GetContext(ctx, dest, query, args...)
	}
	defer seg.Close(nil)

	addQueryMetadata(seg, query)

	if err := db.DB.GetContext(ctx, dest, query, args...); err != nil {
		// 行が存在しないのは障害ではないのでセグメントをエラーにしない
		if err != sql.ErrNoRows {
			seg.Close(err)
		}
		return err
	}

	return nil
}

// NamedQueryContext wraps sqlx.DB.NamedQueryContext with X-Ray tracing
func (db *DB) NamedQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "DB.NamedQuery")
	if seg == nil {
		return db.DB.NamedQueryContext(ctx, query, arg)
	}
	defer seg.Close(nil)

	addQueryMetadata(seg, query)

	rows, err := db.DB.NamedQueryContext(ctx, query, arg)
	if err != nil {
		seg.Close(err)
		return nil, err
	}

	return rows, nil
}

// ExecContext wraps sqlx.DB.ExecContext with X-Ray tracing
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "DB.Exec")
	if seg == nil {
		return db.DB.ExecContext(ctx, query, args...)
	}
	defer seg.Close(nil)

	addQueryMetadata(seg, query)

	result, err := db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		seg.Close(err)
		return nil, err
	}

	return result, nil
}

// クエリをメタデータとして追加
func addQueryMetadata(seg *xray.Segment, query string) {
	if err := seg.AddMetadata("query", query); err != nil {
		log.Debug().Err(err).Msg("Failed to add query metadata")
	}
}
