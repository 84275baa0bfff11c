package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/repomanager"
)

const topN = 5

// StatsService assembles the dashboard aggregates. Results are never cached.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m}
}

func (s *StatsService) Librarian(ctx context.Context, caller models.Identity) (*models.LibrarianStats, error) {
	if err := requireLibrarian(caller); err != nil {
		return nil, err
	}

	repo := s.repomanager.Stats(s.db)
	out := &models.LibrarianStats{}
	var err error

	if out.TotalEbooks, out.TotalSections, err = repo.Totals(ctx); err != nil {
		return nil, internal("stats totals", err)
	}
	if out.EbookActivity, err = repo.RequestCounts(ctx, 0); err != nil {
		return nil, internal("stats ebook activity", err)
	}
	top, err := repo.RequestCounts(ctx, topN)
	if err != nil {
		return nil, internal("stats top borrowed", err)
	}
	out.TopBorrowedEbooks = make([]models.EbookBorrowCount, 0, len(top))
	for _, t := range top {
		out.TopBorrowedEbooks = append(out.TopBorrowedEbooks, models.EbookBorrowCount{Name: t.Name, BorrowCount: t.RequestCount})
	}
	if out.ActiveRequests, err = repo.GrantedRequests(ctx, false); err != nil {
		return nil, internal("stats active requests", err)
	}
	if out.OverdueRequests, err = repo.GrantedRequests(ctx, true); err != nil {
		return nil, internal("stats overdue requests", err)
	}
	if out.UserActivity, err = repo.UserActivity(ctx); err != nil {
		return nil, internal("stats user activity", err)
	}
	if out.FeedbackOverview, err = repo.FeedbackOverview(ctx); err != nil {
		return nil, internal("stats feedback overview", err)
	}
	if out.EbooksBySection, err = repo.EbooksBySection(ctx); err != nil {
		return nil, internal("stats ebooks by section", err)
	}
	return out, nil
}

func (s *StatsService) User(ctx context.Context, caller models.Identity) (*models.UserStats, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}

	repo := s.repomanager.Stats(s.db)
	out := &models.UserStats{}
	var err error

	if out.BorrowingHistory, err = repo.BorrowingHistory(ctx, caller.ID, false); err != nil {
		return nil, internal("stats borrowing history", err)
	}
	if out.ActiveRequests, err = repo.BorrowingHistory(ctx, caller.ID, true); err != nil {
		return nil, internal("stats active requests", err)
	}
	if out.OverdueBooks, err = repo.OverdueBooks(ctx, caller.ID); err != nil {
		return nil, internal("stats overdue books", err)
	}
	if out.FeedbackGiven, err = repo.FeedbackGiven(ctx, caller.ID); err != nil {
		return nil, internal("stats feedback given", err)
	}
	if out.TopRequestedEbooks, err = repo.RequestCounts(ctx, topN); err != nil {
		return nil, internal("stats top requested", err)
	}
	if out.RecentlyAddedEbooks, err = repo.RecentlyAdded(ctx, topN); err != nil {
		return nil, internal("stats recently added", err)
	}
	return out, nil
}
