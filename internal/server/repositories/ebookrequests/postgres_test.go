package ebookrequests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/timex"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

var (
	cols     = []string{"id", "user_id", "ebook_id", "request_date", "return_date", "status"}
	reqDate  = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	backDate = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+ebook_requests\s*\(user_id,\s*ebook_id,\s*request_date,\s*return_date,\s*status\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id$`).
		WithArgs(int64(7), int64(3), reqDate, backDate, "requested").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	got, err := repo.Create(context.Background(), &models.EbookRequest{
		UserID: 7, EbookID: 3,
		RequestDate: timex.NewDate(reqDate), ReturnDate: timex.NewDate(backDate),
		Status: models.StatusRequested,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
}

func TestCreate_ForeignKeyViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+ebook_requests`).
		WithArgs(int64(7), int64(3), reqDate, backDate, "requested").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "ebook_requests_ebook_id_fkey"})

	_, err := repo.Create(context.Background(), &models.EbookRequest{
		UserID: 7, EbookID: 3,
		RequestDate: timex.NewDate(reqDate), ReturnDate: timex.NewDate(backDate),
		Status: models.StatusRequested,
	})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT id, user_id, ebook_id, request_date, return_date, status FROM ebook_requests ORDER BY id$`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(7), int64(3), reqDate, backDate, "granted"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.StatusGranted, got[0].Status)
	assert.Equal(t, "2024-06-15", got[0].ReturnDate.String())
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM ebook_requests WHERE user_id = \$1 ORDER BY id$`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `FROM ebook_requests WHERE id = \$1$`

	mock.ExpectQuery(q).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(1), int64(7), int64(3), reqDate, backDate, "requested"))
	mock.ExpectQuery(q).WithArgs(int64(2)).WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)

	_, err = repo.Get(context.Background(), 2)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `^UPDATE ebook_requests SET status = \$1 WHERE id = \$2$`

	mock.ExpectExec(q).WithArgs("granted", int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("granted", int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateStatus(context.Background(), 1, models.StatusGranted))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 2, models.StatusGranted), common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE FROM ebook_requests WHERE id = \$1$`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), common.ErrorNotFound)
}

func TestCountByUserAndStatus(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM ebook_requests WHERE user_id = \$1 AND status = \$2$`).
		WithArgs(int64(7), "requested").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := repo.CountByUserAndStatus(context.Background(), 7, models.StatusRequested)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
