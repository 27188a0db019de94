package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/campus-halls/service-booking/internal/domain/booking"
	hallDomain "github.com/campus-halls/service-booking/internal/domain/hall"
)

// AvailabilityService answers whether a hall is free for a slot. It only
// reads the booking store; all writes go through the BookingService.
type AvailabilityService struct {
	bookings bookingDomain.BookingRepository
	halls    hallDomain.HallRepository
	logger   *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(
	bookings bookingDomain.BookingRepository,
	halls hallDomain.HallRepository,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, halls: halls, logger: logger}
}

// IsAvailable reports whether the hall has no slot-blocking booking
// overlapping the half-open interval on the date. excludeID lets an
// update ignore its own prior row.
func (s *AvailabilityService) IsAvailable(ctx context.Context, hallID uuid.UUID, date time.Time, interval bookingDomain.Interval, excludeID *uuid.UUID) (bool, error) {
	if _, err := s.halls.FindByID(ctx, hallID); err != nil {
		return false, err
	}

	conflicts, err := s.bookings.FindOverlapping(ctx, hallID, bookingDomain.NormalizeDate(date), interval, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// FindConflicts returns the slot-blocking bookings overlapping the
// interval on the date, for client display.
func (s *AvailabilityService) FindConflicts(ctx context.Context, hallID uuid.UUID, date time.Time, interval bookingDomain.Interval) ([]BookingDTO, error) {
	if _, err := s.halls.FindByID(ctx, hallID); err != nil {
		return nil, err
	}

	conflicts, err := s.bookings.FindOverlapping(ctx, hallID, bookingDomain.NormalizeDate(date), interval, nil)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(conflicts), nil
}

// AvailableHalls returns the department's active halls that are free for
// the interval on the date.
func (s *AvailabilityService) AvailableHalls(ctx context.Context, departmentID uuid.UUID, date time.Time, interval bookingDomain.Interval) ([]HallDTO, error) {
	halls, err := s.halls.FindByDepartmentID(ctx, departmentID, true)
	if err != nil {
		return nil, err
	}
	if len(halls) == 0 {
		return []HallDTO{}, nil
	}

	ids := make([]uuid.UUID, len(halls))
	for i, h := range halls {
		ids[i] = h.ID()
	}

	booked, err := s.bookings.BookedHallIDs(ctx, ids, bookingDomain.NormalizeDate(date), interval)
	if err != nil {
		return nil, err
	}
	taken := make(map[uuid.UUID]struct{}, len(booked))
	for _, id := range booked {
		taken[id] = struct{}{}
	}

	available := make([]HallDTO, 0, len(halls))
	for _, h := range halls {
		if _, ok := taken[h.ID()]; !ok {
			available = append(available, toHallDTO(h))
		}
	}
	return available, nil
}

// UpcomingBookings returns the hall's next slot-blocking bookings from the
// given instant onward.
func (s *AvailabilityService) UpcomingBookings(ctx context.Context, hallID uuid.UUID, from time.Time, limit int) ([]BookingDTO, error) {
	if _, err := s.halls.FindByID(ctx, hallID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindUpcoming(ctx, hallID, from, limit)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}
