package ebooks

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/libkeeper/internal/dbx"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

const ebookCols = `e.id, e.section_id, e.name, e.content, e.author, e.date_issued`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEbook(s scanner, e *models.Ebook, extra ...any) error {
	dest := append([]any{&e.ID, &e.SectionID, &e.Name, &e.Content, &e.Author, &e.DateIssued}, extra...)
	return s.Scan(dest...)
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Ebook) (*models.Ebook, error) {
	query :=
		`INSERT INTO ebooks (section_id, name, content, author, date_issued)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, e.SectionID, e.Name, e.Content, e.Author, e.DateIssued).Scan(&e.ID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return e, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Ebook, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	res := make([]models.Ebook, 0)
	for rows.Next() {
		var e models.Ebook
		if err := scanEbook(rows, &e); err != nil {
			return nil, dbx.MapError(err)
		}
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return res, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Ebook, error) {
	return r.list(ctx, `SELECT `+ebookCols+` FROM ebooks e ORDER BY e.id`)
}

func (r *PostgresRepository) ListBySection(ctx context.Context, sectionID int64) ([]models.Ebook, error) {
	return r.list(ctx, `SELECT `+ebookCols+` FROM ebooks e WHERE e.section_id = $1 ORDER BY e.id`, sectionID)
}

func (r *PostgresRepository) ListWithFeedbackByUser(ctx context.Context, userID int64) ([]models.Ebook, error) {
	query :=
		`SELECT ` + ebookCols + `
		 FROM ebooks e
		 JOIN feedback f ON e.id = f.ebook_id
		 WHERE f.user_id = $1
		 ORDER BY f.id`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Ebook, error) {
	e := &models.Ebook{}
	row := r.db.QueryRowContext(ctx, `SELECT `+ebookCols+` FROM ebooks e WHERE e.id = $1`, id)
	if err := scanEbook(row, e); err != nil {
		return nil, dbx.MapError(err)
	}
	return e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.Ebook) error {
	query :=
		`UPDATE ebooks
		 SET section_id = $1, name = $2, content = $3, author = $4, date_issued = $5
		 WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query, e.SectionID, e.Name, e.Content, e.Author, e.DateIssued, e.ID)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ebooks WHERE id = $1`, id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM ebooks WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, dbx.MapError(err)
	}
	return ok, nil
}

func (r *PostgresRepository) ListWithLatestStatus(ctx context.Context, userID int64) ([]models.EbookWithStatus, error) {
	query :=
		`SELECT ` + ebookCols + `, latest.status
		 FROM ebooks e
		 LEFT JOIN LATERAL (
		     SELECT er.status FROM ebook_requests er
		     WHERE er.user_id = $1 AND er.ebook_id = e.id
		     ORDER BY er.id DESC
		     LIMIT 1
		 ) latest ON TRUE
		 ORDER BY e.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	res := make([]models.EbookWithStatus, 0)
	for rows.Next() {
		var (
			e      models.EbookWithStatus
			status sql.NullString
		)
		if err := scanEbook(rows, &e.Ebook, &status); err != nil {
			return nil, dbx.MapError(err)
		}
		if status.Valid {
			st := models.RequestStatus(status.String)
			e.Status = &st
		}
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return res, nil
}
