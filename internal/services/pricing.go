package services

import (
	"ticket-booking/models"

	"github.com/shopspring/decimal"
)

// Price computes the total charge for a validated request. Seat-based totals
// sum the resolved per-seat prices and round once at the end; a seat id
// missing from the price map prices as zero (the validator guarantees this
// does not happen). Simple events charge price times effective quantity.
func Price(event *models.Event, req *ValidatedRequest) decimal.Decimal {
	if req.SeatBased {
		total := decimal.Zero
		for _, id := range req.SeatIDs {
			total = total.Add(req.SeatPrices[id])
		}
		return total.Round(2)
	}
	return event.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
}
