package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-halls/service-booking/internal/application"
)

const eventSource = "service-booking"

// BookingCreatedEvent is published after a booking row is committed.
type BookingCreatedEvent struct {
	BookingID      uuid.UUID `json:"booking_id"`
	HallID         uuid.UUID `json:"hall_id"`
	DepartmentID   uuid.UUID `json:"department_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Purpose        string    `json:"purpose"`
	RequesterName  string    `json:"requester_name"`
	RequesterEmail string    `json:"requester_email"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published after a status transition commits.
type BookingStatusChangedEvent struct {
	BookingID      uuid.UUID `json:"booking_id"`
	HallID         uuid.UUID `json:"hall_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Status         string    `json:"status"`
	CancelReason   string    `json:"cancel_reason,omitempty"`
	RequesterEmail string    `json:"requester_email"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// BookingDeletedEvent is published after a booking row is removed.
type BookingDeletedEvent struct {
	BookingID      uuid.UUID `json:"booking_id"`
	HallID         uuid.UUID `json:"hall_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	RequesterEmail string    `json:"requester_email"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// KafkaNotifier publishes booking notifications to the booking events
// topic. It runs strictly after commit and is best-effort: the caller
// records failures but never rolls back on them.
type KafkaNotifier struct {
	producer *Producer
}

// NewKafkaNotifier creates a KafkaNotifier on top of the given producer.
func NewKafkaNotifier(producer *Producer) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

// NotifyCreated publishes a booking.created event.
func (n *KafkaNotifier) NotifyCreated(ctx context.Context, bk application.BookingDTO) error {
	evt := BookingCreatedEvent{
		BookingID:      bk.ID,
		HallID:         bk.HallID,
		DepartmentID:   bk.DepartmentID,
		Date:           bk.Date,
		StartTime:      bk.StartTime,
		EndTime:        bk.EndTime,
		Purpose:        bk.Purpose,
		RequesterName:  bk.Requester.Name,
		RequesterEmail: bk.Requester.Email,
		Status:         bk.Status,
		OccurredAt:     time.Now().UTC(),
	}

	cloudEvent, err := NewCloudEvent(eventSource, BookingCreated, evt)
	if err != nil {
		return err
	}
	return n.producer.PublishEvent(ctx, TopicBookingEvents, bk.ID.String(), cloudEvent)
}

// NotifyStatusChanged publishes a booking.status_changed event.
func (n *KafkaNotifier) NotifyStatusChanged(ctx context.Context, bk application.BookingDTO) error {
	evt := BookingStatusChangedEvent{
		BookingID:      bk.ID,
		HallID:         bk.HallID,
		Date:           bk.Date,
		StartTime:      bk.StartTime,
		EndTime:        bk.EndTime,
		Status:         bk.Status,
		CancelReason:   bk.CancelReason,
		RequesterEmail: bk.Requester.Email,
		OccurredAt:     time.Now().UTC(),
	}

	cloudEvent, err := NewCloudEvent(eventSource, BookingStatusChanged, evt)
	if err != nil {
		return err
	}
	return n.producer.PublishEvent(ctx, TopicBookingEvents, bk.ID.String(), cloudEvent)
}

// NotifyDeleted publishes a booking.deleted event.
func (n *KafkaNotifier) NotifyDeleted(ctx context.Context, bk application.BookingDTO) error {
	evt := BookingDeletedEvent{
		BookingID:      bk.ID,
		HallID:         bk.HallID,
		Date:           bk.Date,
		StartTime:      bk.StartTime,
		EndTime:        bk.EndTime,
		RequesterEmail: bk.Requester.Email,
		OccurredAt:     time.Now().UTC(),
	}

	cloudEvent, err := NewCloudEvent(eventSource, BookingDeleted, evt)
	if err != nil {
		return err
	}
	return n.producer.PublishEvent(ctx, TopicBookingEvents, bk.ID.String(), cloudEvent)
}
