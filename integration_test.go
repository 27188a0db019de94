//go:build integration

package main_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-halls/service-booking/internal/domain"
	bookingDomain "github.com/campus-halls/service-booking/internal/domain/booking"
	"github.com/campus-halls/service-booking/internal/events"
)

// TestConcurrentCreate_OneWinner verifies the transactional conflict check:
// when two requests race for the same slot, exactly one booking is created
// and the loser receives a slot conflict.
func TestConcurrentCreate_OneWinner(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()

	const racers = 2
	results := make([]error, racers)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := stack.Bookings.CreateBooking(context.Background(), stack.createRequest("2030-06-10", "10:00", "12:00"))
			results[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var conflict *domain.SlotConflictError
		require.True(t, errors.As(err, &conflict), "unexpected error: %v", err)
		conflicts++
	}
	assert.Equal(t, 1, successes, "exactly one racer must win the slot")
	assert.Equal(t, 1, conflicts)
}

// TestCreateConflictAndBoundary exercises the overlap predicate against real
// SQL: overlapping slots conflict, touching boundaries do not.
func TestCreateConflictAndBoundary(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()

	ctx := context.Background()

	first, err := stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-10", "10:00", "12:00"))
	require.NoError(t, err)

	_, err = stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-10", "11:00", "13:00"))
	var conflict *domain.SlotConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, first.ID, conflict.BookingID)
	assert.Equal(t, "2030-06-10", conflict.Date)
	assert.Equal(t, "10:00", conflict.StartTime)
	assert.Equal(t, "12:00", conflict.EndTime)

	_, err = stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-10", "12:00", "14:00"))
	require.NoError(t, err, "back-to-back slots must not conflict")

	_, err = stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-11", "10:00", "12:00"))
	require.NoError(t, err, "another date must not conflict")
}

// TestCancelledBookingFreesSlot verifies that terminal statuses stop
// blocking the slot in the real overlap query.
func TestCancelledBookingFreesSlot(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()

	ctx := context.Background()

	created, err := stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-10", "10:00", "12:00"))
	require.NoError(t, err)

	date, _ := bookingDomain.ParseDate("2030-06-10")
	iv, _ := bookingDomain.ParseInterval("10:00", "12:00")

	free, err := stack.Availability.IsAvailable(ctx, stack.HallID, date, iv, nil)
	require.NoError(t, err)
	assert.False(t, free)

	_, err = stack.Bookings.CancelBooking(ctx, created.ID, "event withdrawn")
	require.NoError(t, err)

	free, err = stack.Availability.IsAvailable(ctx, stack.HallID, date, iv, nil)
	require.NoError(t, err)
	assert.True(t, free, "cancelled booking must free the slot")

	_, err = stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-10", "10:00", "12:00"))
	require.NoError(t, err)
}

// TestLifecycleTransitions drives a booking through approve and cancel
// against the real store with optimistic locking.
func TestLifecycleTransitions(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()

	ctx := context.Background()

	created, err := stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-10", "10:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, "Pending", created.Status)

	approved, err := stack.Bookings.ApproveBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", approved.Status)
	assert.Equal(t, created.Version+1, approved.Version)

	_, err = stack.Bookings.RejectBooking(ctx, created.ID)
	var invalid *domain.InvalidTransitionError
	require.True(t, errors.As(err, &invalid), "confirmed bookings cannot be rejected")

	cancelled, err := stack.Bookings.CancelBooking(ctx, created.ID, "speaker unavailable")
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", cancelled.Status)
	assert.Equal(t, "speaker unavailable", cancelled.CancelReason)

	_, err = stack.Bookings.ApproveBooking(ctx, created.ID)
	require.True(t, errors.As(err, &invalid), "cancelled is terminal")
}

// TestBookingCreatedEventPublished verifies the booking.created CloudEvent
// reaches the booking events topic with the right payload.
func TestBookingCreatedEventPublished(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()

	created, err := stack.Bookings.CreateBooking(context.Background(), stack.createRequest("2030-06-10", "10:00", "12:00"))
	require.NoError(t, err)
	require.NotNil(t, created.NotificationSent)
	assert.True(t, *created.NotificationSent)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents, events.BookingCreated, 15*time.Second)

	var evt events.BookingCreatedEvent
	require.NoError(t, ce.ParseData(&evt))
	assert.Equal(t, created.ID, evt.BookingID)
	assert.Equal(t, stack.HallID, evt.HallID)
	assert.Equal(t, "2030-06-10", evt.Date)
	assert.Equal(t, "10:00", evt.StartTime)
	assert.Equal(t, "12:00", evt.EndTime)
	assert.Equal(t, "Pending", evt.Status)
}

// TestAvailableHallsBrowse verifies the department browse path against the
// real booked-hall query.
func TestAvailableHallsBrowse(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()

	ctx := context.Background()

	_, err := stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-10", "10:00", "12:00"))
	require.NoError(t, err)

	date, _ := bookingDomain.ParseDate("2030-06-10")
	iv, _ := bookingDomain.ParseInterval("11:00", "13:00")

	halls, err := stack.Availability.AvailableHalls(ctx, stack.DepartmentID, date, iv)
	require.NoError(t, err)
	assert.Empty(t, halls, "the only hall is booked for an overlapping slot")

	iv, _ = bookingDomain.ParseInterval("12:00", "14:00")
	halls, err = stack.Availability.AvailableHalls(ctx, stack.DepartmentID, date, iv)
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, stack.HallID, halls[0].ID)
}

// TestDeleteBookingGuard verifies the future-only delete rule against real
// rows.
func TestDeleteBookingGuard(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()

	ctx := context.Background()

	created, err := stack.Bookings.CreateBooking(ctx, stack.createRequest("2030-06-10", "10:00", "12:00"))
	require.NoError(t, err)

	require.NoError(t, stack.Bookings.DeleteBooking(ctx, created.ID))

	_, err = stack.Bookings.GetBooking(ctx, created.ID)
	var notFound *domain.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

// TestCreateBookingUnknownHall verifies referencing a missing hall fails
// before any row is written.
func TestCreateBookingUnknownHall(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()

	req := stack.createRequest("2030-06-10", "10:00", "12:00")
	req.HallID = uuid.New()

	_, err := stack.Bookings.CreateBooking(context.Background(), req)
	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))

	var count int64
	require.NoError(t, infra.DB.Table("bookings").Count(&count).Error)
	assert.Zero(t, count)
}
