package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking
// aggregates. The booking store is the single shared mutable resource;
// only these methods touch booking rows.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindOverlapping retrieves slot-blocking bookings (Pending or
	// Confirmed) for the hall and date whose intervals overlap the given
	// half-open interval. excludeID, when non-nil, removes a booking's own
	// row from the result so an update can re-validate itself.
	FindOverlapping(ctx context.Context, hallID uuid.UUID, date time.Time, interval Interval, excludeID *uuid.UUID) ([]*Booking, error)

	// BookedHallIDs returns the distinct hall ids among the given set that
	// have a slot-blocking booking overlapping the interval on the date.
	BookedHallIDs(ctx context.Context, hallIDs []uuid.UUID, date time.Time, interval Interval) ([]uuid.UUID, error)

	// FindUpcoming retrieves slot-blocking bookings for a hall from the
	// given instant onward, soonest first.
	FindUpcoming(ctx context.Context, hallID uuid.UUID, from time.Time, limit int) ([]*Booking, error)

	// FindByDepartmentID retrieves bookings for a department with
	// pagination, newest first.
	FindByDepartmentID(ctx context.Context, departmentID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination, optionally filtered
	// by status and hall (admin).
	ListAll(ctx context.Context, page, limit int, status *BookingStatus, hallID *uuid.UUID) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// CreateIfFree persists a new booking only if its slot is free. The
	// conflict check and insert run in one transaction under a row lock on
	// the hall, so two concurrent calls for overlapping slots cannot both
	// succeed. Returns *domain.SlotConflictError when the slot is taken.
	CreateIfFree(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic
	// locking.
	Update(ctx context.Context, booking *Booking) error

	// Delete removes a booking row outright.
	Delete(ctx context.Context, id uuid.UUID) error
}
