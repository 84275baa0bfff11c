package models

import "github.com/dmitrijs2005/libkeeper/internal/timex"

type Ebook struct {
	ID         int64      `json:"id"`
	SectionID  int64      `json:"section_id"`
	Name       string     `json:"name"`
	Content    string     `json:"content"`
	Author     string     `json:"author"`
	DateIssued timex.Date `json:"date_issued"`
}

// EbookWithStatus annotates an ebook with the status of the caller's latest
// request for it; Status is nil when the caller never requested it.
type EbookWithStatus struct {
	Ebook
	Status *RequestStatus `json:"status"`
}
