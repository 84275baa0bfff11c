package sections

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/dbx"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Section) (*models.Section, error) {
	query :=
		`INSERT INTO sections (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, s.Name, s.Description).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, dbx.MapError(err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Section, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, created_at FROM sections ORDER BY id`)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	res := make([]models.Section, 0)
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, dbx.MapError(err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return res, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Section, error) {
	query := `SELECT id, name, description, created_at FROM sections WHERE id = $1`

	s := &models.Section{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
		return nil, dbx.MapError(err)
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.Section) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sections SET name = $1, description = $2 WHERE id = $3`,
		s.Name, s.Description, s.ID)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM sections WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, dbx.MapError(err)
	}
	return ok, nil
}
