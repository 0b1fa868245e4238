package services

import (
	"context"
	"fmt"

	"ticket-booking/internal/status"
	"ticket-booking/models"

	"github.com/shopspring/decimal"
)

// ValidatedRequest is the outcome of a successful validation. For seat-based
// events it carries the resolved seat price map so pricing never has to
// re-resolve availability, and Quantity is derived from the seat list
// (a caller-supplied quantity is deliberately ignored in that case).
type ValidatedRequest struct {
	Quantity   int
	SeatIDs    []string
	SeatPrices map[string]decimal.Decimal
	SeatBased  bool
}

// BookingValidator checks a booking request against live availability.
type BookingValidator struct {
	resolver *AvailabilityResolver
}

func NewBookingValidator(resolver *AvailabilityResolver) *BookingValidator {
	return &BookingValidator{resolver: resolver}
}

func (v *BookingValidator) Validate(ctx context.Context, event *models.Event, quantity int, seatIDs []string) (*ValidatedRequest, error) {
	available, err := v.resolver.Resolve(ctx, event)
	if err != nil {
		return nil, err
	}
	return ValidateBooking(event, quantity, seatIDs, available)
}

// ValidateBooking applies the booking rules in order; the first failing rule
// wins and is reported as a distinct rejection.
func ValidateBooking(event *models.Event, quantity int, seatIDs []string, available []models.Seat) (*ValidatedRequest, error) {
	if !event.IsActive() {
		return nil, status.Unavailable("Event is not available for booking.")
	}

	if event.SeatBased() {
		if len(available) == 0 {
			return nil, status.Unavailable("No seats available.")
		}

		prices := make(map[string]decimal.Decimal, len(available))
		for _, seat := range available {
			prices[seat.ID] = seat.Price
		}
		seen := make(map[string]struct{}, len(seatIDs))
		for _, id := range seatIDs {
			if _, ok := prices[id]; !ok {
				return nil, status.Unavailablef("Seat %s is not available.", id)
			}
			if _, dup := seen[id]; dup {
				return nil, status.Invalid(fmt.Sprintf("Seat %s is selected more than once.", id))
			}
			seen[id] = struct{}{}
		}
		if len(seatIDs) == 0 {
			return nil, status.Invalid("Please select at least one seat.")
		}

		return &ValidatedRequest{
			Quantity:   len(seatIDs),
			SeatIDs:    seatIDs,
			SeatPrices: prices,
			SeatBased:  true,
		}, nil
	}

	if quantity < 1 {
		return nil, status.Invalid("Quantity must be at least 1.")
	}
	if quantity > event.AvailableTickets {
		return nil, status.Unavailable("Not enough tickets available.")
	}

	return &ValidatedRequest{Quantity: quantity}, nil
}
