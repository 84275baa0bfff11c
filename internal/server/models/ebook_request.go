package models

import (
	"fmt"

	"github.com/dmitrijs2005/libkeeper/internal/timex"
)

type RequestStatus string

const (
	StatusRequested RequestStatus = "requested"
	StatusGranted   RequestStatus = "granted"
	StatusReturned  RequestStatus = "returned"
	StatusExpired   RequestStatus = "expired"
)

var transitions = map[RequestStatus][]RequestStatus{
	StatusRequested: {StatusGranted, StatusExpired},
	StatusGranted:   {StatusReturned, StatusExpired},
}

func ParseRequestStatus(s string) (RequestStatus, error) {
	st := RequestStatus(s)
	switch st {
	case StatusRequested, StatusGranted, StatusReturned, StatusExpired:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// CanTransition reports whether a request may move from s to next.
// Returned and expired are final.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type EbookRequest struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	EbookID     int64         `json:"ebook_id"`
	RequestDate timex.Date    `json:"request_date"`
	ReturnDate  timex.Date    `json:"return_date"`
	Status      RequestStatus `json:"status"`
}
