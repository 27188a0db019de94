package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusRejected, false},
		{StatusRejected, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusRejected, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusRejected, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestBlocksSlot(t *testing.T) {
	assert.True(t, StatusPending.BlocksSlot())
	assert.True(t, StatusConfirmed.BlocksSlot())
	assert.False(t, StatusRejected.BlocksSlot())
	assert.False(t, StatusCancelled.BlocksSlot())
}

func TestParseBookingStatus(t *testing.T) {
	got, err := ParseBookingStatus("Confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got)

	got, err = ParseBookingStatus("Approved")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got, "Approved is accepted as an alias")

	got, err = ParseBookingStatus("Cancelled")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got)

	_, err = ParseBookingStatus("archived")
	assert.Error(t, err)

	_, err = ParseBookingStatus("pending")
	assert.Error(t, err, "statuses are case sensitive")
}
