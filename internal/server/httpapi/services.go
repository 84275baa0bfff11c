package httpapi

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*services.Session, error)
	LoginUser(ctx context.Context, username, password string) (*services.Session, error)
	LoginLibrarian(ctx context.Context, username, password string) (*services.Session, error)
	ListUsers(ctx context.Context, caller models.Identity) ([]models.Identity, error)
}

type SectionService interface {
	Create(ctx context.Context, caller models.Identity, in services.SectionInput) (*models.Section, error)
	List(ctx context.Context) ([]models.Section, error)
	Get(ctx context.Context, id int64) (*models.Section, error)
	Update(ctx context.Context, caller models.Identity, id int64, in services.SectionInput) error
	Delete(ctx context.Context, caller models.Identity, id int64) error
}

type EbookService interface {
	Create(ctx context.Context, caller models.Identity, in services.EbookInput) (*models.Ebook, error)
	List(ctx context.Context, sectionID *int64) ([]models.Ebook, error)
	Get(ctx context.Context, id int64) (*models.Ebook, error)
	Update(ctx context.Context, caller models.Identity, id int64, in services.EbookInput) error
	Delete(ctx context.Context, caller models.Identity, id int64) error
	ListRequestedByCaller(ctx context.Context, caller models.Identity) ([]models.EbookWithStatus, error)
	ListWithFeedbackByUser(ctx context.Context, userID int64) ([]models.Ebook, error)
}

type EbookRequestService interface {
	Create(ctx context.Context, caller models.Identity, in services.EbookRequestInput) (*models.EbookRequest, error)
	List(ctx context.Context) ([]models.EbookRequest, error)
	ListForCaller(ctx context.Context, caller models.Identity) ([]models.EbookRequest, error)
	Get(ctx context.Context, id int64) (*models.EbookRequest, error)
	UpdateStatus(ctx context.Context, caller models.Identity, id int64, status string) (*models.EbookRequest, error)
	Delete(ctx context.Context, caller models.Identity, id int64) error
}

type FeedbackService interface {
	Create(ctx context.Context, in services.FeedbackInput) (*models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
	Get(ctx context.Context, id int64) (*models.Feedback, error)
	Update(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}

type StatsService interface {
	Librarian(ctx context.Context, caller models.Identity) (*models.LibrarianStats, error)
	User(ctx context.Context, caller models.Identity) (*models.UserStats, error)
}

// Services bundles everything the router dispatches to.
type Services struct {
	Users         UserService
	Sections      SectionService
	Ebooks        EbookService
	EbookRequests EbookRequestService
	Feedback      FeedbackService
	Stats         StatsService
}
