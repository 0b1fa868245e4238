package services

import (
	"context"

	"ticket-booking/models"
)

// AvailabilityResolver derives the live set of bookable seats for an event
// from its seat plan and the non-cancelled bookings in the ledger. Seat
// occupancy is always recomputed from the ledger; it is never cached on the
// event.
type AvailabilityResolver struct {
	ledger BookingLedger
}

func NewAvailabilityResolver(ledger BookingLedger) *AvailabilityResolver {
	return &AvailabilityResolver{ledger: ledger}
}

// Resolve returns the currently unbooked seats in plan order, or nil when the
// event has no seat plan (callers must read AvailableTickets instead). A plan
// with zero seats yields an empty, non-nil slice.
func (r *AvailabilityResolver) Resolve(ctx context.Context, event *models.Event) ([]models.Seat, error) {
	if !event.SeatBased() {
		return nil, nil
	}

	bookings, err := r.ledger.ActiveBookings(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	return ResolveSeats(event, bookings), nil
}

// ResolveSeats is the pure core of Resolve: full seat set minus the seats
// held by non-cancelled bookings. Payment status is irrelevant; a pending
// booking holds its seats.
func ResolveSeats(event *models.Event, bookings []*models.Booking) []models.Seat {
	if !event.SeatBased() {
		return nil
	}

	booked := make(map[string]struct{})
	for _, b := range bookings {
		if b.IsCancelled {
			continue
		}
		for _, id := range b.SelectedSeats {
			booked[id] = struct{}{}
		}
	}

	all := event.Plan.AllSeats(event.Price)
	free := make([]models.Seat, 0, len(all))
	for _, seat := range all {
		if _, taken := booked[seat.ID]; !taken {
			free = append(free, seat)
		}
	}
	return free
}

// SeatCount is the total capacity of an event: the plan's seat count for
// seat-based events, else the remaining ticket inventory.
func SeatCount(event *models.Event) int {
	if !event.SeatBased() {
		return event.AvailableTickets
	}
	return event.Plan.TotalSeats()
}
