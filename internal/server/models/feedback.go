package models

import "github.com/dmitrijs2005/libkeeper/internal/timex"

type Feedback struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	EbookID      int64      `json:"ebook_id"`
	Feedback     string     `json:"feedback"`
	FeedbackDate timex.Date `json:"feedback_date"`
}
