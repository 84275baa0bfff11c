package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/server/cache"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libkeeper/internal/timex"
)

const feedbackNotFound = "Feedback not found!"

// FeedbackInput is a new feedback entry. An empty FeedbackDate means today.
type FeedbackInput struct {
	UserID       int64
	EbookID      int64
	Feedback     string
	FeedbackDate string
}

type FeedbackService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *cache.Cache
	now         func() time.Time
}

func NewFeedbackService(db *sql.DB, m repomanager.RepositoryManager, c *cache.Cache) *FeedbackService {
	return &FeedbackService{db: db, repomanager: m, cache: c, now: time.Now}
}

func (s *FeedbackService) Create(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	if in.UserID == 0 || in.EbookID == 0 || in.Feedback == "" {
		return nil, invalid("User ID, Ebook ID, and Feedback are required!")
	}

	date := timex.NewDate(s.now())
	if in.FeedbackDate != "" {
		d, err := timex.ParseDate(in.FeedbackDate)
		if err != nil {
			return nil, invalid("Feedback Date must be a valid date!")
		}
		date = d
	}

	if err := mustExist(ctx, s.repomanager.Users(s.db).Exists, in.UserID, "user", userNotFound); err != nil {
		return nil, err
	}
	if err := mustExist(ctx, s.repomanager.Ebooks(s.db).Exists, in.EbookID, "ebook", ebookNotFound); err != nil {
		return nil, err
	}

	f, err := s.repomanager.Feedback(s.db).Create(ctx, &models.Feedback{
		UserID:       in.UserID,
		EbookID:      in.EbookID,
		Feedback:     in.Feedback,
		FeedbackDate: date,
	})
	if err != nil {
		return nil, notFoundOr("create feedback", err, ebookNotFound)
	}
	if err := invalidateLists(ctx, s.cache); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	list, err := s.repomanager.Feedback(s.db).List(ctx)
	if err != nil {
		return nil, internal("list feedback", err)
	}
	return list, nil
}

func (s *FeedbackService) Get(ctx context.Context, id int64) (*models.Feedback, error) {
	f, err := s.repomanager.Feedback(s.db).Get(ctx, id)
	if err != nil {
		return nil, notFoundOr("get feedback", err, feedbackNotFound)
	}
	return f, nil
}

func (s *FeedbackService) Update(ctx context.Context, id int64, text string) error {
	if text == "" {
		return invalid("Feedback is required!")
	}
	if err := s.repomanager.Feedback(s.db).UpdateText(ctx, id, text); err != nil {
		return notFoundOr("update feedback", err, feedbackNotFound)
	}
	return invalidateLists(ctx, s.cache)
}

func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Feedback(s.db).Delete(ctx, id); err != nil {
		return notFoundOr("delete feedback", err, feedbackNotFound)
	}
	return invalidateLists(ctx, s.cache)
}
