package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-halls/service-booking/internal/domain"
	bookingDomain "github.com/campus-halls/service-booking/internal/domain/booking"
)

type availabilityFixture struct {
	availability *AvailabilityService
	bookingSvc   *BookingService
	repo         *memBookingRepo
	halls        *memHallRepo
	deptID       uuid.UUID
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()
	repo := newMemBookingRepo()
	halls := newMemHallRepo()
	deptID := uuid.New()

	return &availabilityFixture{
		availability: NewAvailabilityService(repo, halls, zap.NewNop()),
		bookingSvc:   NewBookingService(repo, halls, stubDeptReader{}, &recordingNotifier{}, zap.NewNop()),
		repo:         repo,
		halls:        halls,
		deptID:       deptID,
	}
}

func (f *availabilityFixture) book(t *testing.T, hallID uuid.UUID, date, start, end string) *BookingDTO {
	t.Helper()
	dto, err := f.bookingSvc.CreateBooking(context.Background(), CreateBookingRequest{
		HallID:         hallID,
		DepartmentID:   f.deptID,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		Purpose:        "Seminar",
		Attendees:      30,
		RequesterName:  "Aisha Rahman",
		RequesterEmail: "aisha@example.edu",
	})
	require.NoError(t, err)
	return dto
}

func mustSlot(t *testing.T, dateStr, start, end string) (time.Time, bookingDomain.Interval) {
	t.Helper()
	date, err := bookingDomain.ParseDate(dateStr)
	require.NoError(t, err)
	iv, err := bookingDomain.ParseInterval(start, end)
	require.NoError(t, err)
	return date, iv
}

func TestIsAvailable(t *testing.T) {
	f := newAvailabilityFixture(t)
	hall := f.halls.add(f.deptID, "Dewan Utama", true)
	f.book(t, hall.ID(), "2030-06-10", "10:00", "12:00")

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "overlapping", start: "11:00", end: "13:00", want: false},
		{name: "identical", start: "10:00", end: "12:00", want: false},
		{name: "nested", start: "10:30", end: "11:30", want: false},
		{name: "back to back after", start: "12:00", end: "14:00", want: true},
		{name: "back to back before", start: "08:00", end: "10:00", want: true},
		{name: "disjoint", start: "15:00", end: "17:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, iv := mustSlot(t, "2030-06-10", tt.start, tt.end)
			got, err := f.availability.IsAvailable(context.Background(), hall.ID(), date, iv, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAvailable_OtherDateIsFree(t *testing.T) {
	f := newAvailabilityFixture(t)
	hall := f.halls.add(f.deptID, "Dewan Utama", true)
	f.book(t, hall.ID(), "2030-06-10", "10:00", "12:00")

	date, iv := mustSlot(t, "2030-06-11", "10:00", "12:00")
	got, err := f.availability.IsAvailable(context.Background(), hall.ID(), date, iv, nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIsAvailable_ExcludesOwnBooking(t *testing.T) {
	f := newAvailabilityFixture(t)
	hall := f.halls.add(f.deptID, "Dewan Utama", true)
	existing := f.book(t, hall.ID(), "2030-06-10", "10:00", "12:00")

	date, iv := mustSlot(t, "2030-06-10", "10:00", "12:00")
	got, err := f.availability.IsAvailable(context.Background(), hall.ID(), date, iv, &existing.ID)
	require.NoError(t, err)
	assert.True(t, got, "a booking must not conflict with itself during re-validation")
}

func TestIsAvailable_UnknownHall(t *testing.T) {
	f := newAvailabilityFixture(t)

	date, iv := mustSlot(t, "2030-06-10", "10:00", "12:00")
	_, err := f.availability.IsAvailable(context.Background(), uuid.New(), date, iv, nil)
	var notFound *domain.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestIsAvailable_IgnoresNonBlockingStatuses(t *testing.T) {
	f := newAvailabilityFixture(t)
	hall := f.halls.add(f.deptID, "Dewan Utama", true)
	existing := f.book(t, hall.ID(), "2030-06-10", "10:00", "12:00")

	_, err := f.bookingSvc.RejectBooking(context.Background(), existing.ID)
	require.NoError(t, err)

	date, iv := mustSlot(t, "2030-06-10", "10:00", "12:00")
	got, err := f.availability.IsAvailable(context.Background(), hall.ID(), date, iv, nil)
	require.NoError(t, err)
	assert.True(t, got, "rejected bookings must not block the slot")
}

func TestFindConflicts(t *testing.T) {
	f := newAvailabilityFixture(t)
	hall := f.halls.add(f.deptID, "Dewan Utama", true)
	existing := f.book(t, hall.ID(), "2030-06-10", "10:00", "12:00")
	f.book(t, hall.ID(), "2030-06-10", "14:00", "16:00")

	date, iv := mustSlot(t, "2030-06-10", "11:00", "13:00")
	conflicts, err := f.availability.FindConflicts(context.Background(), hall.ID(), date, iv)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, existing.ID, conflicts[0].ID)
}

func TestAvailableHalls(t *testing.T) {
	f := newAvailabilityFixture(t)
	booked := f.halls.add(f.deptID, "Dewan Utama", true)
	free := f.halls.add(f.deptID, "Seminar Room B", true)
	f.halls.add(f.deptID, "Closed Annex", false)
	f.halls.add(uuid.New(), "Other Faculty Hall", true)

	f.book(t, booked.ID(), "2030-06-10", "10:00", "12:00")

	date, iv := mustSlot(t, "2030-06-10", "11:00", "13:00")
	halls, err := f.availability.AvailableHalls(context.Background(), f.deptID, date, iv)
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, free.ID(), halls[0].ID)
}

func TestAvailableHalls_EmptyDepartment(t *testing.T) {
	f := newAvailabilityFixture(t)

	date, iv := mustSlot(t, "2030-06-10", "10:00", "12:00")
	halls, err := f.availability.AvailableHalls(context.Background(), uuid.New(), date, iv)
	require.NoError(t, err)
	assert.Empty(t, halls)
}

func TestUpcomingBookings(t *testing.T) {
	f := newAvailabilityFixture(t)
	hall := f.halls.add(f.deptID, "Dewan Utama", true)

	later := f.book(t, hall.ID(), "2030-06-12", "09:00", "10:00")
	sooner := f.book(t, hall.ID(), "2030-06-10", "10:00", "12:00")
	cancelled := f.book(t, hall.ID(), "2030-06-11", "10:00", "12:00")
	_, err := f.bookingSvc.CancelBooking(context.Background(), cancelled.ID, "")
	require.NoError(t, err)

	from := time.Date(2030, 6, 9, 0, 0, 0, 0, time.UTC)
	upcoming, err := f.availability.UpcomingBookings(context.Background(), hall.ID(), from, 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, sooner.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)
}
