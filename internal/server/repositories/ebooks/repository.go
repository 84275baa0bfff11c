package ebooks

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Ebook) (*models.Ebook, error)
	List(ctx context.Context) ([]models.Ebook, error)
	ListBySection(ctx context.Context, sectionID int64) ([]models.Ebook, error)
	Get(ctx context.Context, id int64) (*models.Ebook, error)
	Update(ctx context.Context, e *models.Ebook) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	// ListWithLatestStatus returns every ebook with the status of userID's
	// most recent request for it.
	ListWithLatestStatus(ctx context.Context, userID int64) ([]models.EbookWithStatus, error)
	ListWithFeedbackByUser(ctx context.Context, userID int64) ([]models.Ebook, error)
}
