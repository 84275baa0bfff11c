package ebookrequests

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.EbookRequest) (*models.EbookRequest, error)
	List(ctx context.Context) ([]models.EbookRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]models.EbookRequest, error)
	Get(ctx context.Context, id int64) (*models.EbookRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) error
	Delete(ctx context.Context, id int64) error
	CountByUserAndStatus(ctx context.Context, userID int64, status models.RequestStatus) (int64, error)
}
