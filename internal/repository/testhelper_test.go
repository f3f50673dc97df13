package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
)

// newMockDB はsqlmockをラップしたDBとX-Rayセグメント付きのコンテキストを作成します
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock, context.Context) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})

	ctx, seg := xray.BeginSegment(context.Background(), t.Name())
	t.Cleanup(func() {
		seg.Close(nil)
	})

	return NewDB(sqlx.NewDb(conn, "postgres")), mock, ctx
}
