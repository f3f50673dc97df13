package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bilimhub/bilimhub-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tutorRowColumns = []string{"id", "name", "subject", "price", "rating", "experience", "is_online", "image", "description"}

const (
	listAllQuery      = `SELECT id, name, subject, price, rating, experience, is_online, image, description FROM teachers ORDER BY is_online DESC, rating DESC, id ASC`
	listFilteredQuery = `SELECT id, name, subject, price, rating, experience, is_online, image, description FROM teachers WHERE subject = $1 ORDER BY is_online DESC, rating DESC, id ASC`
)

func TestTutorRepository_List(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		query    string
		args     []driver.Value
		rows     *sqlmock.Rows
		wantLen  int
		wantName string
	}{
		{
			name:    "フィルタなしは全件",
			subject: "",
			query:   listAllQuery,
			rows: sqlmock.NewRows(tutorRowColumns).
				AddRow(1, "Aliya K.", "Математика", "5000.00", "4.90", 5, true, "https://img", nil).
				AddRow(2, "Timur B.", "Физика", "4000.00", "4.50", 3, false, nil, "desc"),
			wantLen:  2,
			wantName: "Aliya K.",
		},
		{
			name:    "センチネル値は全件",
			subject: model.SubjectAll,
			query:   listAllQuery,
			rows: sqlmock.NewRows(tutorRowColumns).
				AddRow(1, "Aliya K.", "Математика", "5000.00", "4.90", 5, true, nil, nil),
			wantLen:  1,
			wantName: "Aliya K.",
		},
		{
			name:    "科目で完全一致フィルタ",
			subject: "Математика",
			query:   listFilteredQuery,
			args:    []driver.Value{"Математика"},
			rows: sqlmock.NewRows(tutorRowColumns).
				AddRow(1, "Aliya K.", "Математика", "5000.00", "4.90", 5, true, nil, nil),
			wantLen:  1,
			wantName: "Aliya K.",
		},
		{
			name:    "該当なしは空スライス",
			subject: "История",
			query:   listFilteredQuery,
			args:    []driver.Value{"История"},
			rows:    sqlmock.NewRows(tutorRowColumns),
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, ctx := newMockDB(t)
			expect := mock.ExpectQuery(regexp.QuoteMeta(tt.query))
			if tt.args != nil {
				expect = expect.WithArgs(tt.args...)
			}
			expect.WillReturnRows(tt.rows)

			tutors, err := NewTutorRepository(db).List(ctx, tt.subject)
			require.NoError(t, err)
			require.NotNil(t, tutors)
			assert.Len(t, tutors, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantName, tutors[0].Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTutorRepository_List_ScansNullableColumns(t *testing.T) {
	db, mock, ctx := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(listAllQuery)).WillReturnRows(
		sqlmock.NewRows(tutorRowColumns).
			AddRow(2, "Timur B.", "Физика", "4000.50", "4.50", 3, false, nil, "Олимпиадная физика"),
	)

	tutors, err := NewTutorRepository(db).List(ctx, "")
	require.NoError(t, err)
	require.Len(t, tutors, 1)

	got := tutors[0]
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, 4000.5, got.Price)
	assert.Equal(t, 4.5, got.Rating)
	assert.Equal(t, 3, got.Experience)
	assert.False(t, got.IsOnline)
	assert.Nil(t, got.Image)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Олимпиадная физика", *got.Description)
}

func TestTutorRepository_List_QueryError(t *testing.T) {
	db, mock, ctx := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(listAllQuery)).WillReturnError(errors.New("connection refused"))

	_, err := NewTutorRepository(db).List(ctx, "")
	assert.ErrorContains(t, err, "connection refused")
}

func TestTutorRepository_ListSnapshot(t *testing.T) {
	db, mock, ctx := newMockDB(t)
	mock.ExpectQuery(`SELECT name, subject, price\s+FROM teachers`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"name", "subject", "price"}).
			AddRow("Aliya K.", "Математика", "5000.00").
			AddRow("Timur B.", "Физика", "4000.00"))

	summaries, err := NewTutorRepository(db).ListSnapshot(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Aliya K. (Математика, 5000тг)", summaries[0].String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTutorRepository_GetNameByID(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(mock sqlmock.Sqlmock)
		wantName     string
		wantNotFound bool
		wantErr      bool
	}{
		{
			name: "講師が存在する",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT name\s+FROM teachers\s+WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Aliya K."))
			},
			wantName: "Aliya K.",
		},
		{
			name: "講師が存在しない",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT name\s+FROM teachers`).
					WithArgs(int64(1)).
					WillReturnError(sql.ErrNoRows)
			},
			wantNotFound: true,
			wantErr:      true,
		},
		{
			name: "DBエラー",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT name\s+FROM teachers`).
					WithArgs(int64(1)).
					WillReturnError(errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, ctx := newMockDB(t)
			tt.setup(mock)

			name, err := NewTutorRepository(db).GetNameByID(ctx, 1)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantNotFound, errors.Is(err, model.ErrTutorNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
