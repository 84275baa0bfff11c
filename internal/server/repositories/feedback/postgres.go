package feedback

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/dbx"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

const selectFeedback = `SELECT id, user_id, ebook_id, feedback, feedback_date FROM feedback`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.Feedback) (*models.Feedback, error) {
	query :=
		`INSERT INTO feedback (user_id, ebook_id, feedback, feedback_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, f.UserID, f.EbookID, f.Feedback, f.FeedbackDate).Scan(&f.ID); err != nil {
		return nil, dbx.MapError(err)
	}
	return f, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, selectFeedback+` ORDER BY id`)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	res := make([]models.Feedback, 0)
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.EbookID, &f.Feedback, &f.FeedbackDate); err != nil {
			return nil, dbx.MapError(err)
		}
		res = append(res, f)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return res, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Feedback, error) {
	f := &models.Feedback{}
	err := r.db.QueryRowContext(ctx, selectFeedback+` WHERE id = $1`, id).
		Scan(&f.ID, &f.UserID, &f.EbookID, &f.Feedback, &f.FeedbackDate)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return f, nil
}

func (r *PostgresRepository) UpdateText(ctx context.Context, id int64, text string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE feedback SET feedback = $1 WHERE id = $2`, text, id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireAffected(res)
}
