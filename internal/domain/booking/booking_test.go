package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-halls/service-booking/internal/domain"
)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	iv, err := NewInterval(600, 720)
	require.NoError(t, err)
	bk, err := NewBooking(
		uuid.New(),
		uuid.New(),
		Requester{Name: "Aisha Rahman", Email: "aisha@example.edu", Phone: "+60123456789"},
		time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		iv,
		"Faculty town hall",
		80,
	)
	require.NoError(t, err)
	return bk
}

func TestNewBooking(t *testing.T) {
	bk := newTestBooking(t)

	assert.NotEqual(t, uuid.Nil, bk.ID())
	assert.Equal(t, StatusPending, bk.Status())
	assert.Equal(t, int64(1), bk.Version())
	assert.Equal(t, "10:00", bk.Interval().Start.String())
	assert.Equal(t, "12:00", bk.Interval().End.String())
}

func TestNewBooking_Validation(t *testing.T) {
	iv, err := NewInterval(600, 720)
	require.NoError(t, err)
	hallID := uuid.New()
	deptID := uuid.New()
	requester := Requester{Name: "Aisha Rahman", Email: "aisha@example.edu"}
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	_, err = NewBooking(uuid.Nil, deptID, requester, date, iv, "meeting", 10)
	assert.Error(t, err)

	_, err = NewBooking(hallID, deptID, Requester{}, date, iv, "meeting", 10)
	assert.Error(t, err)

	_, err = NewBooking(hallID, deptID, requester, date, iv, "", 10)
	assert.Error(t, err)

	_, err = NewBooking(hallID, deptID, requester, date, iv, "meeting", 0)
	assert.Error(t, err)

	_, err = NewBooking(hallID, deptID, requester, date, Interval{Start: 720, End: 600}, "meeting", 10)
	var invalid *domain.InvalidIntervalError
	assert.True(t, errors.As(err, &invalid))
}

func TestBookingStartsAt(t *testing.T) {
	bk := newTestBooking(t)
	assert.Equal(t, time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC), bk.StartsAt())
}

func TestApproveThenCancel(t *testing.T) {
	bk := newTestBooking(t)

	require.NoError(t, bk.Approve())
	assert.Equal(t, StatusConfirmed, bk.Status())

	require.NoError(t, bk.Cancel("event postponed"))
	assert.Equal(t, StatusCancelled, bk.Status())
	assert.Equal(t, "event postponed", bk.CancelReason())
}

func TestRejectedBookingIsFinal(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Reject())

	var invalid *domain.InvalidTransitionError
	err := bk.Approve()
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, string(StatusRejected), invalid.From)
	assert.Equal(t, string(StatusConfirmed), invalid.To)

	assert.Error(t, bk.Cancel("too late"))
	assert.Equal(t, StatusRejected, bk.Status())
}

func TestConfirmedCannotBeRejected(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Approve())

	var invalid *domain.InvalidTransitionError
	assert.True(t, errors.As(bk.Reject(), &invalid))
}

func TestTransitionTo(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.TransitionTo(StatusConfirmed, ""))
	assert.Equal(t, StatusConfirmed, bk.Status())

	err := bk.TransitionTo(StatusPending, "")
	var invalid *domain.InvalidTransitionError
	assert.True(t, errors.As(err, &invalid))
}
