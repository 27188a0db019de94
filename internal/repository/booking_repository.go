package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-halls/service-booking/internal/domain"
	bookingDomain "github.com/campus-halls/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table. Times are stored
// as minutes since midnight so the half-open overlap test is a plain
// integer comparison in SQL.
type BookingModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	HallID         uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_hall_date"`
	DepartmentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RequesterName  string    `gorm:"not null;size:120"`
	RequesterEmail string    `gorm:"not null;size:255"`
	RequesterPhone string    `gorm:"size:32"`
	BookingDate    time.Time `gorm:"type:date;not null;index:idx_bookings_hall_date"`
	StartMinute    int16     `gorm:"type:smallint;not null"`
	EndMinute      int16     `gorm:"type:smallint;not null"`
	Purpose        string    `gorm:"size:500;not null"`
	Attendees      int       `gorm:"not null"`
	Status         string    `gorm:"not null;size:20;index"`
	CancelReason   string    `gorm:"size:500"`
	Version        int64     `gorm:"not null;default:1"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// blockingStatuses are the statuses that occupy a slot.
var blockingStatuses = []string{
	string(bookingDomain.StatusPending),
	string(bookingDomain.StatusConfirmed),
}

// GormBookingRepository is the GORM-based implementation of
// BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, domain.NewStorageError("find booking", err)
	}
	return toDomainBooking(&model)
}

// FindOverlapping retrieves slot-blocking bookings for the hall and date
// whose half-open intervals overlap the given one.
func (r *GormBookingRepository) FindOverlapping(ctx context.Context, hallID uuid.UUID, date time.Time, interval bookingDomain.Interval, excludeID *uuid.UUID) ([]*bookingDomain.Booking, error) {
	query := overlapQuery(r.db.WithContext(ctx), hallID, date, interval)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var models []BookingModel
	if err := query.Order("start_minute ASC").Find(&models).Error; err != nil {
		return nil, domain.NewStorageError("find overlapping bookings", err)
	}
	return toDomainBookings(models)
}

// BookedHallIDs returns the distinct hall ids among the given set with a
// slot-blocking booking overlapping the interval on the date.
func (r *GormBookingRepository) BookedHallIDs(ctx context.Context, hallIDs []uuid.UUID, date time.Time, interval bookingDomain.Interval) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Distinct("hall_id").
		Where("hall_id IN ?", hallIDs).
		Where("booking_date = ?", date).
		Where("status IN ?", blockingStatuses).
		Where("start_minute < ? AND end_minute > ?", interval.End.Minutes(), interval.Start.Minutes()).
		Pluck("hall_id", &ids).Error
	if err != nil {
		return nil, domain.NewStorageError("find booked halls", err)
	}
	return ids, nil
}

// FindUpcoming retrieves slot-blocking bookings for a hall from the given
// instant onward, soonest first.
func (r *GormBookingRepository) FindUpcoming(ctx context.Context, hallID uuid.UUID, from time.Time, limit int) ([]*bookingDomain.Booking, error) {
	day := bookingDomain.NormalizeDate(from)
	minute := from.UTC().Hour()*60 + from.UTC().Minute()

	var models []BookingModel
	err := r.db.WithContext(ctx).
		Where("hall_id = ?", hallID).
		Where("status IN ?", blockingStatuses).
		Where("booking_date > ? OR (booking_date = ? AND end_minute > ?)", day, day, minute).
		Order("booking_date ASC, start_minute ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, domain.NewStorageError("find upcoming bookings", err)
	}
	return toDomainBookings(models)
}

// FindByDepartmentID retrieves bookings for a department with pagination,
// newest first.
func (r *GormBookingRepository) FindByDepartmentID(ctx context.Context, departmentID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("department_id = ?", departmentID).Count(&total).Error; err != nil {
		return nil, 0, domain.NewStorageError("count department bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("booking_date DESC, start_minute ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, domain.NewStorageError("find department bookings", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListAll retrieves all bookings with pagination, optionally filtered by
// status and hall (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int, status *bookingDomain.BookingStatus, hallID *uuid.UUID) ([]*bookingDomain.Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&BookingModel{})
	if status != nil {
		base = base.Where("status = ?", string(*status))
	}
	if hallID != nil {
		base = base.Where("hall_id = ?", *hallID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, domain.NewStorageError("count bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	query := r.db.WithContext(ctx)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	if hallID != nil {
		query = query.Where("hall_id = ?", *hallID)
	}
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, domain.NewStorageError("list bookings", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error
	if err != nil {
		return nil, domain.NewStorageError("count bookings by status", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// CreateIfFree inserts the booking only if no slot-blocking booking
// overlaps it. The hall row is locked FOR UPDATE before the overlap
// check, so two concurrent transactions for the same hall serialize: the
// loser re-runs its check after the winner commits and sees the conflict.
func (r *GormBookingRepository) CreateIfFree(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hall HallModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", bk.HallID()).
			First(&hall).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("Hall", bk.HallID().String())
			}
			return domain.NewStorageError("lock hall", err)
		}
		if !hall.Active {
			return domain.NewValidationError("hall is not active")
		}

		var conflict BookingModel
		err = overlapQuery(tx, bk.HallID(), bk.Date(), bk.Interval()).
			Order("start_minute ASC").
			First(&conflict).Error
		if err == nil {
			return &domain.SlotConflictError{
				BookingID: conflict.ID,
				Date:      conflict.BookingDate.Format(bookingDomain.DateLayout),
				StartTime: bookingDomain.TimeOfDay(conflict.StartMinute).String(),
				EndTime:   bookingDomain.TimeOfDay(conflict.EndMinute).String(),
			}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewStorageError("check slot conflicts", err)
		}

		if err := tx.Create(model).Error; err != nil {
			return domain.NewStorageError("create booking", err)
		}
		return nil
	})
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the stored version matches the version the caller
	// loaded (IncrementVersion has already bumped the in-memory copy).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":        model.Status,
			"cancel_reason": model.CancelReason,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return domain.NewStorageError("update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// Delete removes a booking row outright.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return domain.NewStorageError("delete booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// overlapQuery scopes a query to slot-blocking bookings overlapping the
// half-open interval on the hall and date. The single inequality
// `start < E AND end > S` covers start-inside, end-inside and
// fully-containing cases; adjacent back-to-back slots do not match.
func overlapQuery(db *gorm.DB, hallID uuid.UUID, date time.Time, interval bookingDomain.Interval) *gorm.DB {
	return db.
		Where("hall_id = ?", hallID).
		Where("booking_date = ?", date).
		Where("status IN ?", blockingStatuses).
		Where("start_minute < ? AND end_minute > ?", interval.End.Minutes(), interval.Start.Minutes())
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:             bk.ID(),
		HallID:         bk.HallID(),
		DepartmentID:   bk.DepartmentID(),
		RequesterName:  bk.Requester().Name,
		RequesterEmail: bk.Requester().Email,
		RequesterPhone: bk.Requester().Phone,
		BookingDate:    bk.Date(),
		StartMinute:    int16(bk.Interval().Start),
		EndMinute:      int16(bk.Interval().End),
		Purpose:        bk.Purpose(),
		Attendees:      bk.Attendees(),
		Status:         string(bk.Status()),
		CancelReason:   bk.CancelReason(),
		Version:        bk.Version(),
		CreatedAt:      bk.CreatedAt(),
		UpdatedAt:      bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	interval, err := bookingDomain.NewInterval(
		bookingDomain.TimeOfDay(m.StartMinute),
		bookingDomain.TimeOfDay(m.EndMinute),
	)
	if err != nil {
		return nil, err
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.HallID,
		m.DepartmentID,
		bookingDomain.Requester{
			Name:  m.RequesterName,
			Email: m.RequesterEmail,
			Phone: m.RequesterPhone,
		},
		bookingDomain.NormalizeDate(m.BookingDate),
		interval,
		m.Purpose,
		m.Attendees,
		status,
		m.CancelReason,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
