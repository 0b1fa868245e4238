package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending = "PENDING"
	PaymentSuccess = "SUCCESS"
)

type Booking struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user"`
	EventID       string          `json:"event"`
	Quantity      int             `json:"quantity"`
	SelectedSeats []string        `json:"selected_seats"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
	IsCancelled   bool            `json:"is_cancelled"`
	Reference     string          `json:"reference"`
	Created       time.Time       `json:"booking_date"`
}
