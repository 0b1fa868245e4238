package services

import (
	"context"
	"testing"

	"ticket-booking/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveSeats_SimpleEvent(t *testing.T) {
	event := simpleEvent()
	assert.Nil(t, ResolveSeats(event, nil))
}

func TestResolveSeats_NoBookings(t *testing.T) {
	event := seatedEvent()

	free := ResolveSeats(event, nil)
	require.Len(t, free, 3)
	assert.Equal(t, "A-1", free[0].ID)
	assert.Equal(t, "A-2", free[1].ID)
	assert.Equal(t, "A-3", free[2].ID)
}

func TestResolveSeats_SubtractsBookedSeats(t *testing.T) {
	event := seatedEvent()
	bookings := []*models.Booking{
		{ID: "bk1", SelectedSeats: []string{"A-2"}},
	}

	free := ResolveSeats(event, bookings)
	require.Len(t, free, 2)
	assert.Equal(t, "A-1", free[0].ID)
	assert.Equal(t, "A-3", free[1].ID)
}

func TestResolveSeats_PendingBookingHoldsSeats(t *testing.T) {
	event := seatedEvent()
	bookings := []*models.Booking{
		{ID: "bk1", SelectedSeats: []string{"A-1"}, PaymentStatus: models.PaymentPending},
	}

	free := ResolveSeats(event, bookings)
	require.Len(t, free, 2)
	assert.Equal(t, "A-2", free[0].ID)
}

func TestResolveSeats_CancelledBookingReleasesSeats(t *testing.T) {
	event := seatedEvent()
	bookings := []*models.Booking{
		{ID: "bk1", SelectedSeats: []string{"A-1"}, IsCancelled: true},
		{ID: "bk2", SelectedSeats: []string{"A-2"}},
	}

	free := ResolveSeats(event, bookings)
	require.Len(t, free, 2)
	assert.Equal(t, "A-1", free[0].ID)
	assert.Equal(t, "A-3", free[1].ID)
}

func TestResolveSeats_FullyBooked(t *testing.T) {
	event := seatedEvent()
	bookings := []*models.Booking{
		{ID: "bk1", SelectedSeats: []string{"A-1", "A-2", "A-3"}},
	}

	free := ResolveSeats(event, bookings)
	assert.NotNil(t, free)
	assert.Empty(t, free)
}

func TestResolveSeats_FallbackPrice(t *testing.T) {
	event := seatedEvent()

	free := ResolveSeats(event, nil)
	require.NotEmpty(t, free)
	assert.True(t, free[0].Price.Equal(decimal.NewFromInt(40)))
}

func TestAvailabilityResolver_Resolve(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("ActiveBookings", mock.Anything, "evt1").Return([]*models.Booking{
		{ID: "bk1", SelectedSeats: []string{"A-3"}},
	}, nil)

	resolver := NewAvailabilityResolver(ledger)
	free, err := resolver.Resolve(context.Background(), seatedEvent())

	require.NoError(t, err)
	require.Len(t, free, 2)
	assert.Equal(t, "A-1", free[0].ID)
	assert.Equal(t, "A-2", free[1].ID)
}

func TestAvailabilityResolver_Resolve_SimpleEventSkipsLedger(t *testing.T) {
	ledger := &mockLedger{}

	resolver := NewAvailabilityResolver(ledger)
	free, err := resolver.Resolve(context.Background(), simpleEvent())

	require.NoError(t, err)
	assert.Nil(t, free)
	ledger.AssertNotCalled(t, "ActiveBookings", mock.Anything, mock.Anything)
}

func TestSeatCount(t *testing.T) {
	assert.Equal(t, 3, SeatCount(seatedEvent()))
	assert.Equal(t, 10, SeatCount(simpleEvent()))
}

func TestSeatLifecycle_BookRebookCancel(t *testing.T) {
	sectionPrice := decimal.NewFromInt(100)
	event := &models.Event{
		ID:     "evt1",
		Price:  decimal.NewFromInt(50),
		Status: models.EventStatusActive,
		Plan: models.SeatPlan{
			Kind: models.PlanSectioned,
			Sections: []models.Section{
				{ID: "A", Name: "Front", Capacity: 2, Price: &sectionPrice},
			},
		},
	}

	// Section price overrides the event default.
	available := ResolveSeats(event, nil)
	req, err := ValidateBooking(event, 0, []string{"A-1"}, available)
	require.NoError(t, err)
	assert.Equal(t, "100.00", Price(event, req).StringFixed(2))

	// The held seat is gone from availability and cannot be rebooked.
	booking := &models.Booking{ID: "bk1", SelectedSeats: req.SeatIDs}
	available = ResolveSeats(event, []*models.Booking{booking})
	require.Len(t, available, 1)

	_, err = ValidateBooking(event, 0, []string{"A-1"}, available)
	require.Error(t, err)
	assert.Equal(t, "Seat A-1 is not available.", err.Error())

	// Cancelling restores the full plan.
	booking.IsCancelled = true
	available = ResolveSeats(event, []*models.Booking{booking})
	require.Len(t, available, 2)

	req, err = ValidateBooking(event, 0, []string{"A-1"}, available)
	require.NoError(t, err)
	assert.Equal(t, 1, req.Quantity)
}
