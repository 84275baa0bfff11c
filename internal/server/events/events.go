// Package events publishes ebook request lifecycle notifications.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/google/uuid"
)

const (
	TypeRequestCreated = "ebook_request.created"
	TypeRequestUpdated = "ebook_request.updated"
	TypeRequestDeleted = "ebook_request.deleted"
)

type Event struct {
	ID         uuid.UUID            `json:"id"`
	Type       string               `json:"type"`
	RequestID  int64                `json:"request_id"`
	UserID     int64                `json:"user_id"`
	EbookID    int64                `json:"ebook_id"`
	Status     models.RequestStatus `json:"status,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// NewRequestEvent builds an event of type typ describing req.
func NewRequestEvent(typ string, req models.EbookRequest) Event {
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		RequestID:  req.ID,
		UserID:     req.UserID,
		EbookID:    req.EbookID,
		Status:     req.Status,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
