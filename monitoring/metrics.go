package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_attempts_total",
			Help: "Booking creation attempts by outcome",
		},
		[]string{"outcome"},
	)

	bookingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_create_duration_seconds",
			Help:    "Duration of booking creation including locking and the transaction",
			Buckets: prometheus.DefBuckets,
		},
	)

	ticketsBooked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_booked_total",
			Help: "Total units (seats or tickets) reserved by successful bookings",
		},
	)

	paymentsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_completed_total",
			Help: "Total bookings moved to payment SUCCESS",
		},
	)

	bookingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Total bookings cancelled",
		},
	)
)

type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) TrackBookingCreated(duration time.Duration, quantity int) {
	if m == nil {
		return
	}
	bookingOutcomes.WithLabelValues("created").Inc()
	bookingDuration.Observe(duration.Seconds())
	ticketsBooked.Add(float64(quantity))
}

func (m *Monitor) TrackBookingRejected(reason string) {
	if m == nil {
		return
	}
	bookingOutcomes.WithLabelValues(reason).Inc()
}

func (m *Monitor) TrackPaymentCompleted() {
	if m == nil {
		return
	}
	paymentsCompleted.Inc()
}

func (m *Monitor) TrackBookingCancelled() {
	if m == nil {
		return
	}
	bookingsCancelled.Inc()
}
