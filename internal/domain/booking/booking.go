package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/campus-halls/service-booking/internal/domain"
)

// Requester identifies the staff member a booking was made for.
type Requester struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Booking is the aggregate root for the booking domain. Status changes go
// through the behavior methods, which enforce the lifecycle state machine.
type Booking struct {
	id           uuid.UUID
	hallID       uuid.UUID
	departmentID uuid.UUID
	requester    Requester
	date         time.Time
	interval     Interval
	purpose      string
	attendees    int
	status       BookingStatus
	cancelReason string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status=Pending. The date is
// normalized to its UTC calendar day; the interval must already be
// validated via NewInterval.
func NewBooking(
	hallID, departmentID uuid.UUID,
	requester Requester,
	date time.Time,
	interval Interval,
	purpose string,
	attendees int,
) (*Booking, error) {
	if hallID == uuid.Nil {
		return nil, domain.NewValidationError("hall ID is required")
	}
	if departmentID == uuid.Nil {
		return nil, domain.NewValidationError("department ID is required")
	}
	if requester.Name == "" {
		return nil, domain.NewValidationError("requester name is required")
	}
	if requester.Email == "" {
		return nil, domain.NewValidationError("requester email is required")
	}
	if date.IsZero() {
		return nil, domain.NewValidationError("booking date is required")
	}
	if interval.Start >= interval.End {
		return nil, &domain.InvalidIntervalError{Start: interval.Start.String(), End: interval.End.String()}
	}
	if purpose == "" {
		return nil, domain.NewValidationError("purpose is required")
	}
	if attendees <= 0 {
		return nil, domain.NewValidationError("expected attendees must be positive")
	}

	now := time.Now().UTC()
	return &Booking{
		id:           uuid.New(),
		hallID:       hallID,
		departmentID: departmentID,
		requester:    requester,
		date:         NormalizeDate(date),
		interval:     interval,
		purpose:      purpose,
		attendees:    attendees,
		status:       StatusPending,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, hallID, departmentID uuid.UUID,
	requester Requester,
	date time.Time,
	interval Interval,
	purpose string,
	attendees int,
	status BookingStatus,
	cancelReason string,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		hallID:       hallID,
		departmentID: departmentID,
		requester:    requester,
		date:         date,
		interval:     interval,
		purpose:      purpose,
		attendees:    attendees,
		status:       status,
		cancelReason: cancelReason,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) HallID() uuid.UUID       { return b.hallID }
func (b *Booking) DepartmentID() uuid.UUID { return b.departmentID }
func (b *Booking) Requester() Requester    { return b.requester }
func (b *Booking) Date() time.Time         { return b.date }
func (b *Booking) Interval() Interval      { return b.interval }
func (b *Booking) Purpose() string         { return b.purpose }
func (b *Booking) Attendees() int          { return b.attendees }
func (b *Booking) Status() BookingStatus   { return b.status }
func (b *Booking) CancelReason() string    { return b.cancelReason }
func (b *Booking) Version() int64          { return b.version }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }

// StartsAt returns the booking's start as an instant (UTC).
func (b *Booking) StartsAt() time.Time {
	return b.date.Add(time.Duration(b.interval.Start) * time.Minute)
}

// --- Behavior ---

// Approve transitions the booking from Pending to Confirmed.
func (b *Booking) Approve() error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidTransitionError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.updatedAt = time.Now().UTC()
	return nil
}

// Reject transitions the booking from Pending to Rejected.
func (b *Booking) Reject() error {
	if !b.status.CanTransitionTo(StatusRejected) {
		return domain.NewInvalidTransitionError(string(b.status), string(StatusRejected))
	}
	b.status = StatusRejected
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking to Cancelled and records the reason.
// Pending bookings may be cancelled directly (withdrawal before decision).
func (b *Booking) Cancel(reason string) error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidTransitionError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.cancelReason = reason
	b.updatedAt = time.Now().UTC()
	return nil
}

// TransitionTo applies the transition to the given target status.
func (b *Booking) TransitionTo(target BookingStatus, reason string) error {
	switch target {
	case StatusConfirmed:
		return b.Approve()
	case StatusRejected:
		return b.Reject()
	case StatusCancelled:
		return b.Cancel(reason)
	default:
		return domain.NewInvalidTransitionError(string(b.status), string(target))
	}
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
