package services

import (
	"context"
	"fmt"
	"log/slog"

	"ticket-booking/models"
	"ticket-booking/utils"

	pubnub "github.com/pubnub/go"
)

// Notifier publishes booking lifecycle events to the owning user's realtime
// channel. Delivery is best effort; failures are logged and never fail the
// request.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *models.Booking)
	PaymentCompleted(ctx context.Context, booking *models.Booking)
	BookingCancelled(ctx context.Context, booking *models.Booking)
}

type PubNubNotifier struct {
	pubnub  *pubnub.PubNub
	breaker *utils.CircuitBreaker
}

func NewPubNubNotifier(pn *pubnub.PubNub) *PubNubNotifier {
	return &PubNubNotifier{
		pubnub:  pn,
		breaker: utils.NewCircuitBreaker("pubnub"),
	}
}

func (n *PubNubNotifier) BookingCreated(ctx context.Context, booking *models.Booking) {
	n.publish(ctx, booking.UserID, map[string]any{
		"type":         "booking_created",
		"booking_id":   booking.ID,
		"event_id":     booking.EventID,
		"reference":    booking.Reference,
		"seats":        booking.SelectedSeats,
		"quantity":     booking.Quantity,
		"total_amount": booking.TotalAmount.StringFixed(2),
	})
}

func (n *PubNubNotifier) PaymentCompleted(ctx context.Context, booking *models.Booking) {
	n.publish(ctx, booking.UserID, map[string]any{
		"type":       "payment_success",
		"booking_id": booking.ID,
		"reference":  booking.Reference,
	})
}

func (n *PubNubNotifier) BookingCancelled(ctx context.Context, booking *models.Booking) {
	n.publish(ctx, booking.UserID, map[string]any{
		"type":       "booking_cancelled",
		"booking_id": booking.ID,
		"seats":      booking.SelectedSeats,
	})
}

func (n *PubNubNotifier) publish(ctx context.Context, userID string, message map[string]any) {
	channel := fmt.Sprintf("user-%s", userID)

	_, err := n.breaker.Execute(ctx, func() (interface{}, error) {
		_, _, err := n.pubnub.Publish().
			Channel(channel).
			Message(message).
			Execute()
		return nil, err
	})
	if err != nil {
		slog.Error("Failed to publish notification", "channel", channel, "type", message["type"], "error", err)
	}
}

// NopNotifier discards all notifications, for tests.
type NopNotifier struct{}

func (NopNotifier) BookingCreated(ctx context.Context, booking *models.Booking)   {}
func (NopNotifier) PaymentCompleted(ctx context.Context, booking *models.Booking) {}
func (NopNotifier) BookingCancelled(ctx context.Context, booking *models.Booking) {}
