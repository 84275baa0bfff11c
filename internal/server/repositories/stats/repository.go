// Package stats holds the read-only aggregate queries behind the
// librarian and user dashboards.
package stats

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

type Repository interface {
	Totals(ctx context.Context) (ebooks, sections int64, err error)
	// RequestCounts counts requests per ebook name, busiest first.
	// A limit of 0 returns every ebook.
	RequestCounts(ctx context.Context, limit int) ([]models.EbookRequestCount, error)
	GrantedRequests(ctx context.Context, overdueOnly bool) ([]models.EbookRequest, error)
	UserActivity(ctx context.Context) ([]models.UserActivity, error)
	FeedbackOverview(ctx context.Context) ([]models.FeedbackSummary, error)
	EbooksBySection(ctx context.Context) ([]models.SectionEbookCount, error)

	BorrowingHistory(ctx context.Context, userID int64, grantedOnly bool) ([]models.BorrowedEbook, error)
	OverdueBooks(ctx context.Context, userID int64) ([]models.OverdueEbook, error)
	FeedbackGiven(ctx context.Context, userID int64) ([]models.GivenFeedback, error)
	RecentlyAdded(ctx context.Context, limit int) ([]models.RecentEbook, error)
}
