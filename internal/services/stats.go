package services

import (
	"context"

	"ticket-booking/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// StatsService computes the admin dashboard aggregates. Read-only; revenue
// sums SUCCESS bookings, falling back to quantity times event price for rows
// persisted without a total.
type StatsService struct {
	app core.App
}

func NewStatsService(app core.App) *StatsService {
	return &StatsService{app: app}
}

type AdminStats struct {
	TotalUsers     int    `json:"total_users"`
	TotalEvents    int    `json:"total_events"`
	TotalBookings  int    `json:"total_bookings"`
	PaymentSuccess int    `json:"payment_success"`
	PaymentPending int    `json:"payment_pending"`
	TotalRevenue   string `json:"total_revenue"`
}

func (s *StatsService) Overview(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM users", &stats.TotalUsers},
		{"SELECT COUNT(*) FROM events", &stats.TotalEvents},
		{"SELECT COUNT(*) FROM bookings", &stats.TotalBookings},
	}
	for _, c := range counts {
		if err := s.app.DB().NewQuery(c.query).Row(c.dest); err != nil {
			return nil, err
		}
	}

	statusCounts := []struct {
		status string
		dest   *int
	}{
		{models.PaymentSuccess, &stats.PaymentSuccess},
		{models.PaymentPending, &stats.PaymentPending},
	}
	for _, c := range statusCounts {
		err := s.app.DB().
			NewQuery("SELECT COUNT(*) FROM bookings WHERE payment_status = {:status}").
			Bind(dbx.Params{"status": c.status}).
			Row(c.dest)
		if err != nil {
			return nil, err
		}
	}

	var revenue float64
	err := s.app.DB().
		NewQuery(`SELECT COALESCE(SUM(COALESCE(b.total_amount, b.quantity * e.price)), 0)
			FROM bookings b
			JOIN events e ON e.id = b.event
			WHERE b.payment_status = {:status}`).
		Bind(dbx.Params{"status": models.PaymentSuccess}).
		Row(&revenue)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = decimal.NewFromFloat(revenue).StringFixed(2)

	return stats, nil
}
