package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-halls/service-booking/internal/domain"
	bookingDomain "github.com/campus-halls/service-booking/internal/domain/booking"
	hallDomain "github.com/campus-halls/service-booking/internal/domain/hall"
	"github.com/campus-halls/service-booking/internal/metrics"
)

// Notifier delivers best-effort booking notifications. Failures are
// reported back as a flag on the operation result, never as an operation
// failure.
type Notifier interface {
	NotifyCreated(ctx context.Context, booking BookingDTO) error
	NotifyStatusChanged(ctx context.Context, booking BookingDTO) error
	NotifyDeleted(ctx context.Context, booking BookingDTO) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	HallID         uuid.UUID `json:"hall_id" binding:"required"`
	DepartmentID   uuid.UUID `json:"department_id" binding:"required"`
	Date           string    `json:"date" binding:"required"`
	StartTime      string    `json:"start_time" binding:"required"`
	EndTime        string    `json:"end_time" binding:"required"`
	Purpose        string    `json:"purpose" binding:"required"`
	Attendees      int       `json:"attendees" binding:"required"`
	RequesterName  string    `json:"requester_name" binding:"required"`
	RequesterEmail string    `json:"requester_email" binding:"required"`
	RequesterPhone string    `json:"requester_phone"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID               uuid.UUID               `json:"id"`
	HallID           uuid.UUID               `json:"hall_id"`
	DepartmentID     uuid.UUID               `json:"department_id"`
	Requester        bookingDomain.Requester `json:"requester"`
	Date             string                  `json:"date"`
	StartTime        string                  `json:"start_time"`
	EndTime          string                  `json:"end_time"`
	Purpose          string                  `json:"purpose"`
	Attendees        int                     `json:"attendees"`
	Status           string                  `json:"status"`
	CancelReason     string                  `json:"cancel_reason,omitempty"`
	NotificationSent *bool                   `json:"notification_sent,omitempty"`
	Version          int64                   `json:"version"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// BookingDetailDTO is a booking together with its hall and department.
type BookingDetailDTO struct {
	Booking    BookingDTO    `json:"booking"`
	Hall       HallDTO       `json:"hall"`
	Department DepartmentDTO `json:"department"`
}

// BookingStatsDTO holds booking counts for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// BookingService is the booking lifecycle manager: it creates bookings
// behind the transactional conflict check and governs status transitions.
type BookingService struct {
	repo     bookingDomain.BookingRepository
	halls    hallDomain.HallRepository
	depts    DepartmentReader
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// DepartmentReader is the slice of the department repository the booking
// service needs for detail lookups.
type DepartmentReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (DepartmentDTO, error)
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	halls hallDomain.HallRepository,
	depts DepartmentReader,
	notifier Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		halls:    halls,
		depts:    depts,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateBooking validates the request, then creates the booking behind the
// repository's transactional check-then-insert. The interval is validated
// before any storage access. At most one of two concurrent calls for
// overlapping slots can succeed.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	interval, err := bookingDomain.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	date, err := bookingDomain.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(
		req.HallID,
		req.DepartmentID,
		bookingDomain.Requester{
			Name:  req.RequesterName,
			Email: req.RequesterEmail,
			Phone: req.RequesterPhone,
		},
		date,
		interval,
		req.Purpose,
		req.Attendees,
	)
	if err != nil {
		return nil, err
	}

	hl, err := s.halls.FindByID(ctx, req.HallID)
	if err != nil {
		return nil, err
	}
	if !hl.Active() {
		return nil, domain.NewValidationError("hall is not active")
	}

	if err := s.repo.CreateIfFree(ctx, bk); err != nil {
		var conflict *domain.SlotConflictError
		if errors.As(err, &conflict) {
			metrics.SlotConflictsTotal.Inc()
		}
		return nil, err
	}
	metrics.BookingsCreatedTotal.Inc()

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("hall_id", bk.HallID().String()),
		zap.String("date", bk.Date().Format(bookingDomain.DateLayout)),
		zap.String("interval", bk.Interval().String()),
	)

	result := toBookingDTO(bk)
	s.notify(ctx, &result, s.notifier.NotifyCreated)
	return &result, nil
}

// Transition moves a booking to the target status, enforcing the
// lifecycle state graph. Approving does not re-run the availability
// check: competing requests for the same slot were already blocked at
// create time.
func (s *BookingService) Transition(ctx context.Context, bookingID uuid.UUID, target bookingDomain.BookingStatus, reason string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.TransitionTo(target, reason); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}
	metrics.RecordTransition(string(target))

	s.logger.Info("booking status changed",
		zap.String("booking_id", bk.ID().String()),
		zap.String("status", string(bk.Status())),
	)

	result := toBookingDTO(bk)
	s.notify(ctx, &result, s.notifier.NotifyStatusChanged)
	return &result, nil
}

// ApproveBooking transitions a pending booking to Confirmed.
func (s *BookingService) ApproveBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.Transition(ctx, bookingID, bookingDomain.StatusConfirmed, "")
}

// RejectBooking transitions a pending booking to Rejected.
func (s *BookingService) RejectBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.Transition(ctx, bookingID, bookingDomain.StatusRejected, "")
}

// CancelBooking transitions a booking to Cancelled with the given reason.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	return s.Transition(ctx, bookingID, bookingDomain.StatusCancelled, reason)
}

// DeleteBooking removes a booking row outright. Only bookings whose start
// is strictly in the future may be deleted; cancelled-with-history is the
// preferred path for anything needing an audit trail.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if !bk.StartsAt().After(s.now().UTC()) {
		return &domain.PastBookingError{BookingID: bookingID}
	}

	if err := s.repo.Delete(ctx, bookingID); err != nil {
		return err
	}

	s.logger.Info("booking deleted", zap.String("booking_id", bookingID.String()))

	dto := toBookingDTO(bk)
	s.notify(ctx, &dto, s.notifier.NotifyDeleted)
	return nil
}

// GetBooking retrieves a single booking with its hall and department.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDetailDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	hl, err := s.halls.FindByID(ctx, bk.HallID())
	if err != nil {
		return nil, err
	}
	dept, err := s.depts.FindByID(ctx, bk.DepartmentID())
	if err != nil {
		return nil, err
	}

	return &BookingDetailDTO{
		Booking:    toBookingDTO(bk),
		Hall:       toHallDTO(hl),
		Department: dept,
	}, nil
}

// GetDepartmentBookings retrieves paginated bookings for a department.
func (s *BookingService) GetDepartmentBookings(ctx context.Context, departmentID uuid.UUID, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.FindByDepartmentID(ctx, departmentID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toBookingDTOs(bookings), total, nil
}

// ListAllBookings returns a paginated list of all bookings, optionally
// filtered by status and hall (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int, status *bookingDomain.BookingStatus, hallID *uuid.UUID) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit, status, hallID)
	if err != nil {
		return nil, 0, err
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking counts by status (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Helpers ---

// notify delivers a best-effort notification and records the outcome on
// the DTO. A delivery failure never fails the operation.
func (s *BookingService) notify(ctx context.Context, dto *BookingDTO, fn func(context.Context, BookingDTO) error) {
	sent := true
	if err := fn(ctx, *dto); err != nil {
		sent = false
		metrics.NotificationFailuresTotal.Inc()
		s.logger.Error("failed to publish booking notification",
			zap.String("booking_id", dto.ID.String()),
			zap.Error(err),
		)
	}
	dto.NotificationSent = &sent
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:           bk.ID(),
		HallID:       bk.HallID(),
		DepartmentID: bk.DepartmentID(),
		Requester:    bk.Requester(),
		Date:         bk.Date().Format(bookingDomain.DateLayout),
		StartTime:    bk.Interval().Start.String(),
		EndTime:      bk.Interval().End.String(),
		Purpose:      bk.Purpose(),
		Attendees:    bk.Attendees(),
		Status:       string(bk.Status()),
		CancelReason: bk.CancelReason(),
		Version:      bk.Version(),
		CreatedAt:    bk.CreatedAt(),
		UpdatedAt:    bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
