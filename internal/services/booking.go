package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ticket-booking/internal/status"
	"ticket-booking/models"
	"ticket-booking/monitoring"
	"ticket-booking/utils"
)

// BookingService creates bookings and owns their state transitions. Creation
// runs resolve, validate, price and persist as one logical unit: a per-event
// lock serializes concurrent attempts and the whole write happens inside a
// single ledger transaction.
type BookingService struct {
	ledger  BookingLedger
	locks   Locker
	notify  Notifier
	monitor *monitoring.Monitor
}

func NewBookingService(ledger BookingLedger, locks Locker, notify Notifier, monitor *monitoring.Monitor) *BookingService {
	return &BookingService{
		ledger:  ledger,
		locks:   locks,
		notify:  notify,
		monitor: monitor,
	}
}

type CreateBookingInput struct {
	EventID  string
	Quantity int
	SeatIDs  []string
}

// Create books an event for the given user. For seat-based events the
// caller-supplied quantity is ignored and derived from the seat list; for
// simple events the inventory decrement is conditional so it can never go
// negative. Seat-based events never mutate stored capacity.
func (s *BookingService) Create(ctx context.Context, userID string, in CreateBookingInput) (*models.Booking, error) {
	if in.EventID == "" {
		return nil, status.Invalid("event_id is required.")
	}

	start := time.Now()

	release, err := s.locks.Acquire(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	defer release()

	var booking *models.Booking
	err = s.ledger.WithTx(ctx, func(ctx context.Context, tx BookingLedger) error {
		event, err := tx.LoadEvent(ctx, in.EventID)
		if err != nil {
			return err
		}

		available, err := NewAvailabilityResolver(tx).Resolve(ctx, event)
		if err != nil {
			return err
		}

		req, err := ValidateBooking(event, in.Quantity, in.SeatIDs, available)
		if err != nil {
			return err
		}

		reference, err := newBookingReference()
		if err != nil {
			return err
		}

		seats := req.SeatIDs
		if seats == nil {
			seats = []string{}
		}

		b := &models.Booking{
			UserID:        userID,
			EventID:       event.ID,
			Quantity:      req.Quantity,
			SelectedSeats: seats,
			TotalAmount:   Price(event, req),
			PaymentStatus: models.PaymentPending,
			Reference:     reference,
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		if req.SeatBased {
			if err := tx.ClaimSeats(ctx, event.ID, b.ID, req.SeatIDs); err != nil {
				return err
			}
		} else {
			if err := tx.DecrementTickets(ctx, event.ID, req.Quantity); err != nil {
				return err
			}
		}

		booking = b
		return nil
	})
	if err != nil {
		if kind, ok := status.KindOf(err); ok {
			s.monitor.TrackBookingRejected(kind.String())
		} else {
			slog.Error("Booking creation failed", "event_id", in.EventID, "user_id", userID, "error", err)
			s.monitor.TrackBookingRejected("error")
		}
		return nil, err
	}

	s.monitor.TrackBookingCreated(time.Since(start), booking.Quantity)
	s.notify.BookingCreated(ctx, booking)

	return booking, nil
}

// CompletePayment flips a booking to SUCCESS. The transition is one-way and
// idempotent; only the owning user may apply it.
func (s *BookingService) CompletePayment(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := s.ledger.LoadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, status.Forbidden("Not your booking.")
	}

	if err := s.ledger.SetPaymentSuccess(ctx, bookingID); err != nil {
		return nil, err
	}

	booking.PaymentStatus = models.PaymentSuccess
	s.monitor.TrackPaymentCompleted()
	s.notify.PaymentCompleted(ctx, booking)

	return booking, nil
}

// Cancel flips is_cancelled and releases the booking's seat claims so they
// resolve as available again. Cancelling an already cancelled booking is a
// no-op; cancellation never reverses.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := s.ledger.LoadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, status.Forbidden("Not your booking.")
	}
	if booking.IsCancelled {
		return booking, nil
	}

	err = s.ledger.WithTx(ctx, func(ctx context.Context, tx BookingLedger) error {
		if err := tx.SetCancelled(ctx, bookingID); err != nil {
			return err
		}
		return tx.ReleaseSeats(ctx, bookingID)
	})
	if err != nil {
		return nil, err
	}

	booking.IsCancelled = true
	s.monitor.TrackBookingCancelled()
	s.notify.BookingCancelled(ctx, booking)

	return booking, nil
}

// History lists the user's bookings, newest first.
func (s *BookingService) History(ctx context.Context, userID string) ([]*models.Booking, error) {
	return s.ledger.BookingsForUser(ctx, userID)
}

func newBookingReference() (string, error) {
	code, err := utils.GenerateCode(5)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BK-%s", code), nil
}
