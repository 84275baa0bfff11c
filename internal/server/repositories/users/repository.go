package users

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// LockByID takes a row lock on the user until the enclosing transaction ends.
	LockByID(ctx context.Context, id int64) error
}
