package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/dbx"
	"github.com/dmitrijs2005/libkeeper/internal/logging"
	"github.com/dmitrijs2005/libkeeper/internal/server/auth"
	"github.com/dmitrijs2005/libkeeper/internal/server/cache"
	"github.com/dmitrijs2005/libkeeper/internal/server/events"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libkeeper/internal/timex"
)

const ebookRequestNotFound = "Ebook request not found!"

// EbookRequestInput is a borrow request. UserID may be left zero, in which
// case the caller is assumed.
type EbookRequestInput struct {
	UserID     int64
	EbookID    int64
	ReturnDate string
}

type EbookRequestService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *cache.Cache
	publisher   events.Publisher
	log         logging.Logger
	now         func() time.Time
}

func NewEbookRequestService(db *sql.DB, m repomanager.RepositoryManager, c *cache.Cache, p events.Publisher, log logging.Logger) *EbookRequestService {
	return &EbookRequestService{
		db:          db,
		repomanager: m,
		cache:       c,
		publisher:   p,
		log:         log.With("service", "ebook_requests"),
		now:         time.Now,
	}
}

// Create files a new request in status "requested". The cap on open requests
// is checked and the row inserted under a lock on the caller's user row, so
// concurrent requests from one user cannot overshoot it.
func (s *EbookRequestService) Create(ctx context.Context, caller models.Identity, in EbookRequestInput) (*models.EbookRequest, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if in.EbookID == 0 || in.ReturnDate == "" {
		return nil, invalid("User ID, Ebook ID, and Return Date are required!")
	}
	returnDate, err := timex.ParseDate(in.ReturnDate)
	if err != nil {
		return nil, invalid("Return Date must be a valid date!")
	}
	if in.UserID != 0 && in.UserID != caller.ID {
		return nil, common.NewError(common.ErrorForbidden, "You can only request ebooks for yourself!")
	}

	today := timex.NewDate(s.now())
	if returnDate.Before(today) {
		return nil, invalid("Return Date cannot be earlier than Request Date!")
	}

	if err := mustExist(ctx, s.repomanager.Ebooks(s.db).Exists, in.EbookID, "ebook", ebookNotFound); err != nil {
		return nil, err
	}

	req := &models.EbookRequest{
		UserID:      caller.ID,
		EbookID:     in.EbookID,
		RequestDate: today,
		ReturnDate:  returnDate,
		Status:      models.StatusRequested,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).LockByID(ctx, caller.ID); err != nil {
			return notFoundOr("lock user", err, userNotFound)
		}

		repo := s.repomanager.EbookRequests(tx)
		n, err := repo.CountByUserAndStatus(ctx, caller.ID, models.StatusRequested)
		if err != nil {
			return internal("count requests", err)
		}
		if n >= common.MaxOpenRequests {
			return invalid(fmt.Sprintf("You can only request a maximum of %d books!", common.MaxOpenRequests))
		}

		if _, err := repo.Create(ctx, req); err != nil {
			// The ebook can vanish between the existence check and the insert.
			return notFoundOr("create request", err, ebookNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError("create request", err)
	}

	if err := invalidateLists(ctx, s.cache); err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeRequestCreated, *req)
	return req, nil
}

func (s *EbookRequestService) List(ctx context.Context) ([]models.EbookRequest, error) {
	list, err := s.repomanager.EbookRequests(s.db).List(ctx)
	if err != nil {
		return nil, internal("list requests", err)
	}
	return list, nil
}

// ListForCaller returns the caller's own requests. User role only.
func (s *EbookRequestService) ListForCaller(ctx context.Context, caller models.Identity) ([]models.EbookRequest, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	list, err := s.repomanager.EbookRequests(s.db).ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, internal("list user requests", err)
	}
	return list, nil
}

func (s *EbookRequestService) Get(ctx context.Context, id int64) (*models.EbookRequest, error) {
	req, err := s.repomanager.EbookRequests(s.db).Get(ctx, id)
	if err != nil {
		return nil, notFoundOr("get request", err, ebookRequestNotFound)
	}
	return req, nil
}

// UpdateStatus moves a request to status. Librarians may make any legal
// transition; users may only return their own granted requests.
func (s *EbookRequestService) UpdateStatus(ctx context.Context, caller models.Identity, id int64, status string) (*models.EbookRequest, error) {
	if status == "" {
		return nil, invalid("Status is required!")
	}
	next, err := models.ParseRequestStatus(status)
	if err != nil {
		return nil, invalid("Invalid status!")
	}

	repo := s.repomanager.EbookRequests(s.db)
	req, err := repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr("get request", err, ebookRequestNotFound)
	}

	switch {
	case auth.IsLibrarian(caller):
	case auth.IsUser(caller):
		if req.UserID != caller.ID {
			return nil, common.NewError(common.ErrorForbidden, "You can only update your own requests!")
		}
	default:
		return nil, errNotLibrarian
	}

	if !req.Status.CanTransition(next) {
		return nil, invalid(fmt.Sprintf("Invalid status transition from %s to %s!", req.Status, next))
	}
	if auth.IsUser(caller) && next != models.StatusReturned {
		return nil, errNotLibrarian
	}

	if err := repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, notFoundOr("update request", err, ebookRequestNotFound)
	}
	req.Status = next

	if err := invalidateLists(ctx, s.cache); err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeRequestUpdated, *req)
	return req, nil
}

// Delete removes a request. Allowed for librarians and for the owner.
func (s *EbookRequestService) Delete(ctx context.Context, caller models.Identity, id int64) error {
	repo := s.repomanager.EbookRequests(s.db)
	req, err := repo.Get(ctx, id)
	if err != nil {
		return notFoundOr("get request", err, ebookRequestNotFound)
	}
	if !auth.IsLibrarian(caller) && req.UserID != caller.ID {
		return common.NewError(common.ErrorForbidden, "You can only delete your own requests!")
	}

	if err := repo.Delete(ctx, id); err != nil {
		return notFoundOr("delete request", err, ebookRequestNotFound)
	}
	if err := invalidateLists(ctx, s.cache); err != nil {
		return err
	}
	s.publish(ctx, events.TypeRequestDeleted, *req)
	return nil
}

func (s *EbookRequestService) publish(ctx context.Context, typ string, req models.EbookRequest) {
	if err := s.publisher.Publish(ctx, events.NewRequestEvent(typ, req)); err != nil {
		s.log.Warn(ctx, "publish event failed", "type", typ, "request_id", req.ID, "error", err)
	}
}
