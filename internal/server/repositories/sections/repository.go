package sections

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Section) (*models.Section, error)
	List(ctx context.Context) ([]models.Section, error)
	Get(ctx context.Context, id int64) (*models.Section, error)
	Update(ctx context.Context, s *models.Section) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
