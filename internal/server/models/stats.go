package models

import "github.com/dmitrijs2005/libkeeper/internal/timex"

type EbookRequestCount struct {
	Name         string `json:"name"`
	RequestCount int64  `json:"request_count"`
}

type EbookBorrowCount struct {
	Name        string `json:"name"`
	BorrowCount int64  `json:"borrow_count"`
}

type UserActivity struct {
	Username        string `json:"username"`
	TotalRequests   int64  `json:"total_requests"`
	GrantedRequests int64  `json:"granted_requests"`
}

type FeedbackSummary struct {
	Name             string     `json:"name"`
	FeedbackCount    int64      `json:"feedback_count"`
	LastFeedbackDate timex.Date `json:"last_feedback_date"`
}

type SectionEbookCount struct {
	SectionName string `json:"section_name"`
	EbookCount  int64  `json:"ebook_count"`
}

type LibrarianStats struct {
	TotalEbooks       int64               `json:"total_ebooks"`
	TotalSections     int64               `json:"total_sections"`
	EbookActivity     []EbookRequestCount `json:"ebook_activity"`
	TopBorrowedEbooks []EbookBorrowCount  `json:"top_borrowed_ebooks"`
	ActiveRequests    []EbookRequest      `json:"active_requests"`
	OverdueRequests   []EbookRequest      `json:"overdue_requests"`
	UserActivity      []UserActivity      `json:"user_activity"`
	FeedbackOverview  []FeedbackSummary   `json:"feedback_overview"`
	EbooksBySection   []SectionEbookCount `json:"ebooks_by_section"`
}

type BorrowedEbook struct {
	Name        string     `json:"name"`
	RequestDate timex.Date `json:"request_date"`
	ReturnDate  timex.Date `json:"return_date"`
}

type OverdueEbook struct {
	Name       string     `json:"name"`
	ReturnDate timex.Date `json:"return_date"`
}

type GivenFeedback struct {
	Name         string     `json:"name"`
	Feedback     string     `json:"feedback"`
	FeedbackDate timex.Date `json:"feedback_date"`
}

type RecentEbook struct {
	Name       string     `json:"name"`
	Author     string     `json:"author"`
	DateIssued timex.Date `json:"date_issued"`
}

type UserStats struct {
	BorrowingHistory    []BorrowedEbook     `json:"borrowing_history"`
	ActiveRequests      []BorrowedEbook     `json:"active_requests"`
	OverdueBooks        []OverdueEbook      `json:"overdue_books"`
	FeedbackGiven       []GivenFeedback     `json:"feedback_given"`
	TopRequestedEbooks  []EbookRequestCount `json:"top_requested_ebooks"`
	RecentlyAddedEbooks []RecentEbook       `json:"recently_added_ebooks"`
}
