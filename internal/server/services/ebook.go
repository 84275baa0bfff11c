package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/server/cache"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libkeeper/internal/timex"
)

const ebookNotFound = "Ebook not found!"

// EbookInput is a create or update payload. A zero SectionID on update keeps
// the current section.
type EbookInput struct {
	SectionID  int64
	Name       string
	Content    string
	Author     string
	DateIssued timex.Date
}

func (in EbookInput) hasFields() bool {
	return in.Name != "" && in.Content != "" && in.Author != "" && !in.DateIssued.IsZero()
}

type EbookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *cache.Cache
	ttl         time.Duration
}

func NewEbookService(db *sql.DB, m repomanager.RepositoryManager, c *cache.Cache, ttl time.Duration) *EbookService {
	return &EbookService{db: db, repomanager: m, cache: c, ttl: ttl}
}

func (s *EbookService) Create(ctx context.Context, caller models.Identity, in EbookInput) (*models.Ebook, error) {
	if err := requireLibrarian(caller); err != nil {
		return nil, err
	}
	if in.SectionID == 0 || !in.hasFields() {
		return nil, invalid("section_id, name, content, author, and date_issued are required!")
	}
	if err := mustExist(ctx, s.repomanager.Sections(s.db).Exists, in.SectionID, "section", sectionNotFound); err != nil {
		return nil, err
	}

	e, err := s.repomanager.Ebooks(s.db).Create(ctx, &models.Ebook{
		SectionID:  in.SectionID,
		Name:       in.Name,
		Content:    in.Content,
		Author:     in.Author,
		DateIssued: in.DateIssued,
	})
	if err != nil {
		return nil, internal("create ebook", err)
	}
	if err := invalidateLists(ctx, s.cache); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all ebooks, or those of one section when sectionID is set.
// Only the unfiltered list is cached.
func (s *EbookService) List(ctx context.Context, sectionID *int64) ([]models.Ebook, error) {
	repo := s.repomanager.Ebooks(s.db)

	var (
		list []models.Ebook
		err  error
	)
	if sectionID != nil {
		list, err = repo.ListBySection(ctx, *sectionID)
	} else {
		list, err = cache.Cached(ctx, s.cache, common.CacheKeyEbooks, s.ttl, repo.List)
	}
	if err != nil {
		return nil, internal("list ebooks", err)
	}
	return list, nil
}

func (s *EbookService) Get(ctx context.Context, id int64) (*models.Ebook, error) {
	e, err := s.repomanager.Ebooks(s.db).Get(ctx, id)
	if err != nil {
		return nil, notFoundOr("get ebook", err, ebookNotFound)
	}
	return e, nil
}

func (s *EbookService) Update(ctx context.Context, caller models.Identity, id int64, in EbookInput) error {
	if err := requireLibrarian(caller); err != nil {
		return err
	}

	repo := s.repomanager.Ebooks(s.db)
	current, err := repo.Get(ctx, id)
	if err != nil {
		return notFoundOr("get ebook", err, ebookNotFound)
	}
	if !in.hasFields() {
		return invalid("name, content, author, and date_issued are required!")
	}

	sectionID := current.SectionID
	if in.SectionID != 0 && in.SectionID != current.SectionID {
		if err := mustExist(ctx, s.repomanager.Sections(s.db).Exists, in.SectionID, "section", sectionNotFound); err != nil {
			return err
		}
		sectionID = in.SectionID
	}

	err = repo.Update(ctx, &models.Ebook{
		ID:         id,
		SectionID:  sectionID,
		Name:       in.Name,
		Content:    in.Content,
		Author:     in.Author,
		DateIssued: in.DateIssued,
	})
	if err != nil {
		return notFoundOr("update ebook", err, ebookNotFound)
	}
	return invalidateLists(ctx, s.cache)
}

func (s *EbookService) Delete(ctx context.Context, caller models.Identity, id int64) error {
	if err := requireLibrarian(caller); err != nil {
		return err
	}
	if err := s.repomanager.Ebooks(s.db).Delete(ctx, id); err != nil {
		return notFoundOr("delete ebook", err, ebookNotFound)
	}
	return invalidateLists(ctx, s.cache)
}

// ListRequestedByCaller returns every ebook annotated with the status of the
// caller's latest request for it. User role only.
func (s *EbookService) ListRequestedByCaller(ctx context.Context, caller models.Identity) ([]models.EbookWithStatus, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Ebooks(s.db).ListWithLatestStatus(ctx, caller.ID)
	if err != nil {
		return nil, internal("list ebooks with status", err)
	}
	return list, nil
}

// ListWithFeedbackByUser returns the ebooks userID left feedback on.
func (s *EbookService) ListWithFeedbackByUser(ctx context.Context, userID int64) ([]models.Ebook, error) {
	list, err := s.repomanager.Ebooks(s.db).ListWithFeedbackByUser(ctx, userID)
	if err != nil {
		return nil, internal("list ebooks with feedback", err)
	}
	return list, nil
}
