package stats

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/libkeeper/internal/dbx"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// queryAll runs query and scans every row with scan. The result is never nil.
func queryAll[T any](ctx context.Context, db dbx.DBTX, scan func(*sql.Rows, *T) error, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	res := make([]T, 0)
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, dbx.MapError(err)
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return res, nil
}

func (r *PostgresRepository) Totals(ctx context.Context) (int64, int64, error) {
	var ebooks, sections int64
	err := r.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM ebooks), (SELECT COUNT(*) FROM sections)`).Scan(&ebooks, &sections)
	if err != nil {
		return 0, 0, dbx.MapError(err)
	}
	return ebooks, sections, nil
}

func (r *PostgresRepository) RequestCounts(ctx context.Context, limit int) ([]models.EbookRequestCount, error) {
	query :=
		`SELECT e.name, COUNT(er.id) AS request_count
		 FROM ebooks e
		 LEFT JOIN ebook_requests er ON e.id = er.ebook_id
		 GROUP BY e.name
		 ORDER BY request_count DESC, e.name`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.EbookRequestCount) error {
		return rows.Scan(&v.Name, &v.RequestCount)
	}, query, args...)
}

func (r *PostgresRepository) GrantedRequests(ctx context.Context, overdueOnly bool) ([]models.EbookRequest, error) {
	query :=
		`SELECT id, user_id, ebook_id, request_date, return_date, status
		 FROM ebook_requests
		 WHERE status = 'granted'`
	if overdueOnly {
		query += ` AND return_date < CURRENT_DATE`
	}
	query += ` ORDER BY id`

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.EbookRequest) error {
		return rows.Scan(&v.ID, &v.UserID, &v.EbookID, &v.RequestDate, &v.ReturnDate, &v.Status)
	}, query)
}

func (r *PostgresRepository) UserActivity(ctx context.Context) ([]models.UserActivity, error) {
	query :=
		`SELECT u.username,
		        COUNT(er.id) AS total_requests,
		        COUNT(er.id) FILTER (WHERE er.status = 'granted') AS granted_requests
		 FROM users u
		 LEFT JOIN ebook_requests er ON u.id = er.user_id
		 GROUP BY u.username
		 ORDER BY u.username`

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.UserActivity) error {
		return rows.Scan(&v.Username, &v.TotalRequests, &v.GrantedRequests)
	}, query)
}

func (r *PostgresRepository) FeedbackOverview(ctx context.Context) ([]models.FeedbackSummary, error) {
	query :=
		`SELECT e.name, COUNT(f.id) AS feedback_count, MAX(f.feedback_date) AS last_feedback_date
		 FROM feedback f
		 JOIN ebooks e ON f.ebook_id = e.id
		 GROUP BY e.name
		 ORDER BY e.name`

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.FeedbackSummary) error {
		return rows.Scan(&v.Name, &v.FeedbackCount, &v.LastFeedbackDate)
	}, query)
}

func (r *PostgresRepository) EbooksBySection(ctx context.Context) ([]models.SectionEbookCount, error) {
	query :=
		`SELECT s.name AS section_name, COUNT(e.id) AS ebook_count
		 FROM sections s
		 LEFT JOIN ebooks e ON s.id = e.section_id
		 GROUP BY s.name
		 ORDER BY s.name`

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.SectionEbookCount) error {
		return rows.Scan(&v.SectionName, &v.EbookCount)
	}, query)
}

func (r *PostgresRepository) BorrowingHistory(ctx context.Context, userID int64, grantedOnly bool) ([]models.BorrowedEbook, error) {
	query :=
		`SELECT e.name, er.request_date, er.return_date
		 FROM ebooks e
		 JOIN ebook_requests er ON e.id = er.ebook_id
		 WHERE er.user_id = $1`
	if grantedOnly {
		query += ` AND er.status = 'granted'`
	}
	query += ` ORDER BY er.id`

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.BorrowedEbook) error {
		return rows.Scan(&v.Name, &v.RequestDate, &v.ReturnDate)
	}, query, userID)
}

func (r *PostgresRepository) OverdueBooks(ctx context.Context, userID int64) ([]models.OverdueEbook, error) {
	query :=
		`SELECT e.name, er.return_date
		 FROM ebooks e
		 JOIN ebook_requests er ON e.id = er.ebook_id
		 WHERE er.user_id = $1 AND er.status = 'granted' AND er.return_date < CURRENT_DATE
		 ORDER BY er.return_date`

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.OverdueEbook) error {
		return rows.Scan(&v.Name, &v.ReturnDate)
	}, query, userID)
}

func (r *PostgresRepository) FeedbackGiven(ctx context.Context, userID int64) ([]models.GivenFeedback, error) {
	query :=
		`SELECT e.name, f.feedback, f.feedback_date
		 FROM ebooks e
		 JOIN feedback f ON e.id = f.ebook_id
		 WHERE f.user_id = $1
		 ORDER BY f.id`

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.GivenFeedback) error {
		return rows.Scan(&v.Name, &v.Feedback, &v.FeedbackDate)
	}, query, userID)
}

func (r *PostgresRepository) RecentlyAdded(ctx context.Context, limit int) ([]models.RecentEbook, error) {
	query :=
		`SELECT name, author, date_issued
		 FROM ebooks
		 ORDER BY date_issued DESC, id DESC
		 LIMIT $1`

	return queryAll(ctx, r.db, func(rows *sql.Rows, v *models.RecentEbook) error {
		return rows.Scan(&v.Name, &v.Author, &v.DateIssued)
	}, query, limit)
}
