package feedback

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.Feedback) (*models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
	Get(ctx context.Context, id int64) (*models.Feedback, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}
