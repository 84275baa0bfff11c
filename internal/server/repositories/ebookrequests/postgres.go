package ebookrequests

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/dbx"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

const selectRequest = `SELECT id, user_id, ebook_id, request_date, return_date, status FROM ebook_requests`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, req *models.EbookRequest) (*models.EbookRequest, error) {
	query :=
		`INSERT INTO ebook_requests (user_id, ebook_id, request_date, return_date, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		req.UserID, req.EbookID, req.RequestDate, req.ReturnDate, string(req.Status)).Scan(&req.ID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return req, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.EbookRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	res := make([]models.EbookRequest, 0)
	for rows.Next() {
		var req models.EbookRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.EbookID, &req.RequestDate, &req.ReturnDate, &req.Status); err != nil {
			return nil, dbx.MapError(err)
		}
		res = append(res, req)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return res, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.EbookRequest, error) {
	return r.list(ctx, selectRequest+` ORDER BY id`)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.EbookRequest, error) {
	return r.list(ctx, selectRequest+` WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.EbookRequest, error) {
	req := &models.EbookRequest{}
	err := r.db.QueryRowContext(ctx, selectRequest+` WHERE id = $1`, id).
		Scan(&req.ID, &req.UserID, &req.EbookID, &req.RequestDate, &req.ReturnDate, &req.Status)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return req, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE ebook_requests SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ebook_requests WHERE id = $1`, id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) CountByUserAndStatus(ctx context.Context, userID int64, status models.RequestStatus) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ebook_requests WHERE user_id = $1 AND status = $2`,
		userID, string(status)).Scan(&n)
	if err != nil {
		return 0, dbx.MapError(err)
	}
	return n, nil
}
