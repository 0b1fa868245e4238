package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ticket-booking/internal/status"
	"ticket-booking/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// BookingLedger is the append-mostly store of bookings. It owns the booking
// state transitions and the seat-claim rows that back the per-event seat
// uniqueness guarantee.
type BookingLedger interface {
	// WithTx runs fn against a ledger scoped to a single transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx BookingLedger) error) error

	LoadEvent(ctx context.Context, eventID string) (*models.Event, error)
	LoadBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ActiveBookings(ctx context.Context, eventID string) ([]*models.Booking, error)
	BookingsForUser(ctx context.Context, userID string) ([]*models.Booking, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	// ClaimSeats inserts one claim row per seat; the unique (event, seat)
	// index rejects a seat already held by a non-cancelled booking.
	ClaimSeats(ctx context.Context, eventID, bookingID string, seatIDs []string) error
	ReleaseSeats(ctx context.Context, bookingID string) error
	// DecrementTickets applies a conditional decrement that only succeeds
	// while the resulting inventory stays non-negative.
	DecrementTickets(ctx context.Context, eventID string, quantity int) error

	SetPaymentSuccess(ctx context.Context, bookingID string) error
	SetCancelled(ctx context.Context, bookingID string) error
}

// RecordLedger implements BookingLedger on PocketBase collections.
type RecordLedger struct {
	app core.App
}

func NewRecordLedger(app core.App) *RecordLedger {
	return &RecordLedger{app: app}
}

func (l *RecordLedger) WithTx(ctx context.Context, fn func(ctx context.Context, tx BookingLedger) error) error {
	return l.app.RunInTransaction(func(txApp core.App) error {
		return fn(ctx, &RecordLedger{app: txApp})
	})
}

func (l *RecordLedger) LoadEvent(ctx context.Context, eventID string) (*models.Event, error) {
	record, err := l.app.FindRecordById("events", eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.NotFound("Event not found.")
		}
		return nil, err
	}
	return models.EventFromRecord(record)
}

func (l *RecordLedger) LoadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	record, err := l.app.FindRecordById("bookings", bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.NotFound("Booking not found.")
		}
		return nil, err
	}
	return models.BookingFromRecord(record)
}

func (l *RecordLedger) ActiveBookings(ctx context.Context, eventID string) ([]*models.Booking, error) {
	records, err := l.app.FindRecordsByFilter(
		"bookings",
		"event = {:event} && is_cancelled = false",
		"-created",
		0,
		0,
		dbx.Params{"event": eventID},
	)
	if err != nil {
		return nil, err
	}
	return bookingsFromRecords(records)
}

func (l *RecordLedger) BookingsForUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	records, err := l.app.FindRecordsByFilter(
		"bookings",
		"user = {:user}",
		"-created",
		0,
		0,
		dbx.Params{"user": userID},
	)
	if err != nil {
		return nil, err
	}
	return bookingsFromRecords(records)
}

func bookingsFromRecords(records []*core.Record) ([]*models.Booking, error) {
	bookings := make([]*models.Booking, 0, len(records))
	for _, record := range records {
		booking, err := models.BookingFromRecord(record)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (l *RecordLedger) CreateBooking(ctx context.Context, booking *models.Booking) error {
	collection, err := l.app.FindCollectionByNameOrId("bookings")
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("user", booking.UserID)
	record.Set("event", booking.EventID)
	record.Set("quantity", booking.Quantity)
	record.Set("selected_seats", booking.SelectedSeats)
	record.Set("total_amount", booking.TotalAmount.InexactFloat64())
	record.Set("payment_status", booking.PaymentStatus)
	record.Set("is_cancelled", booking.IsCancelled)
	record.Set("reference", booking.Reference)

	if err := l.app.Save(record); err != nil {
		return err
	}

	booking.ID = record.Id
	booking.Created = record.GetDateTime("created").Time()
	return nil
}

func (l *RecordLedger) ClaimSeats(ctx context.Context, eventID, bookingID string, seatIDs []string) error {
	collection, err := l.app.FindCollectionByNameOrId("seat_claims")
	if err != nil {
		return err
	}

	for _, seatID := range seatIDs {
		claim := core.NewRecord(collection)
		claim.Set("event", eventID)
		claim.Set("seat", seatID)
		claim.Set("booking", bookingID)

		if err := l.app.Save(claim); err != nil {
			if isUniqueViolation(err) {
				return status.Unavailablef("Seat %s is not available.", seatID)
			}
			return err
		}
	}
	return nil
}

func (l *RecordLedger) ReleaseSeats(ctx context.Context, bookingID string) error {
	_, err := l.app.DB().
		NewQuery("DELETE FROM seat_claims WHERE booking = {:booking}").
		Bind(dbx.Params{"booking": bookingID}).
		Execute()
	return err
}

func (l *RecordLedger) DecrementTickets(ctx context.Context, eventID string, quantity int) error {
	res, err := l.app.DB().
		NewQuery("UPDATE events SET available_tickets = available_tickets - {:qty} WHERE id = {:id} AND available_tickets >= {:qty}").
		Bind(dbx.Params{"qty": quantity, "id": eventID}).
		Execute()
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return status.Unavailable("Not enough tickets available.")
	}
	return nil
}

func (l *RecordLedger) SetPaymentSuccess(ctx context.Context, bookingID string) error {
	record, err := l.app.FindRecordById("bookings", bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return status.NotFound("Booking not found.")
		}
		return err
	}

	record.Set("payment_status", models.PaymentSuccess)
	return l.app.Save(record)
}

func (l *RecordLedger) SetCancelled(ctx context.Context, bookingID string) error {
	record, err := l.app.FindRecordById("bookings", bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return status.NotFound("Booking not found.")
		}
		return err
	}

	record.Set("is_cancelled", true)
	return l.app.Save(record)
}

// isUniqueViolation matches both the raw SQLite constraint error and the
// validation error PocketBase raises for a broken unique index.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "must be unique")
}
