package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/server/cache"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/repomanager"
)

const sectionNotFound = "Section not found!"

type SectionInput struct {
	Name        string
	Description string
}

type SectionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *cache.Cache
	ttl         time.Duration
}

func NewSectionService(db *sql.DB, m repomanager.RepositoryManager, c *cache.Cache, ttl time.Duration) *SectionService {
	return &SectionService{db: db, repomanager: m, cache: c, ttl: ttl}
}

func (in SectionInput) validate() error {
	if in.Name == "" || in.Description == "" {
		return invalid("Name and description are required!")
	}
	return nil
}

func (s *SectionService) Create(ctx context.Context, caller models.Identity, in SectionInput) (*models.Section, error) {
	if err := requireLibrarian(caller); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	sec, err := s.repomanager.Sections(s.db).Create(ctx, &models.Section{Name: in.Name, Description: in.Description})
	if err != nil {
		return nil, internal("create section", err)
	}
	if err := invalidateLists(ctx, s.cache); err != nil {
		return nil, err
	}
	return sec, nil
}

// List returns all sections, served from the list cache when fresh.
func (s *SectionService) List(ctx context.Context) ([]models.Section, error) {
	list, err := cache.Cached(ctx, s.cache, common.CacheKeySections, s.ttl, func(ctx context.Context) ([]models.Section, error) {
		return s.repomanager.Sections(s.db).List(ctx)
	})
	if err != nil {
		return nil, internal("list sections", err)
	}
	return list, nil
}

func (s *SectionService) Get(ctx context.Context, id int64) (*models.Section, error) {
	sec, err := s.repomanager.Sections(s.db).Get(ctx, id)
	if err != nil {
		return nil, notFoundOr("get section", err, sectionNotFound)
	}
	return sec, nil
}

func (s *SectionService) Update(ctx context.Context, caller models.Identity, id int64, in SectionInput) error {
	if err := requireLibrarian(caller); err != nil {
		return err
	}

	repo := s.repomanager.Sections(s.db)
	if err := mustExist(ctx, repo.Exists, id, "section", sectionNotFound); err != nil {
		return err
	}
	if err := in.validate(); err != nil {
		return err
	}

	if err := repo.Update(ctx, &models.Section{ID: id, Name: in.Name, Description: in.Description}); err != nil {
		return notFoundOr("update section", err, sectionNotFound)
	}
	return invalidateLists(ctx, s.cache)
}

func (s *SectionService) Delete(ctx context.Context, caller models.Identity, id int64) error {
	if err := requireLibrarian(caller); err != nil {
		return err
	}
	if err := s.repomanager.Sections(s.db).Delete(ctx, id); err != nil {
		return notFoundOr("delete section", err, sectionNotFound)
	}
	return invalidateLists(ctx, s.cache)
}

// invalidateLists drops both cached lists; a failure is reported as internal
// so a stale list is never served after a successful write.
func invalidateLists(ctx context.Context, c *cache.Cache) error {
	if err := c.Invalidate(ctx, common.CacheKeySections, common.CacheKeyEbooks); err != nil {
		return internal("invalidate cache", err)
	}
	return nil
}

func mustExist(ctx context.Context, exists func(context.Context, int64) (bool, error), id int64, what, msg string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return internal("check "+what, err)
	}
	if !ok {
		return common.NewError(common.ErrorNotFound, msg)
	}
	return nil
}
