package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
)

const (
	CategoryEvent  = "event"
	CategorySports = "sports"
	CategoryBus    = "bus"
	CategoryTrain  = "train"
)

type Event struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	Date             time.Time       `json:"date"`
	Location         string          `json:"location"`
	Source           string          `json:"source"`
	Destination      string          `json:"destination"`
	Price            decimal.Decimal `json:"price"`
	AvailableTickets int             `json:"available_tickets"`
	Plan             SeatPlan        `json:"seat_plan"`
	Status           string          `json:"status"`
	Created          time.Time       `json:"created"`
}

func (e *Event) IsActive() bool {
	return e.Status == EventStatusActive
}

// SeatBased reports whether bookings for this event claim individual seats
// instead of decrementing a ticket counter.
func (e *Event) SeatBased() bool {
	return e.Plan.Kind != PlanNone
}
