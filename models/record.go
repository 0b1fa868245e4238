package models

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/shopspring/decimal"
)

// JSONField returns the raw bytes of a record's json field.
func JSONField(record *core.Record, key string) []byte {
	switch v := record.Get(key).(type) {
	case types.JSONRaw:
		return []byte(v)
	case []byte:
		return v
	case string:
		return []byte(v)
	case nil:
		return nil
	default:
		raw, _ := json.Marshal(v)
		return raw
	}
}

func EventFromRecord(record *core.Record) (*Event, error) {
	plan, err := ParseSeatPlan(JSONField(record, "seat_plan"))
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:               record.Id,
		Title:            record.GetString("title"),
		Description:      record.GetString("description"),
		Category:         record.GetString("category"),
		Date:             record.GetDateTime("date").Time(),
		Location:         record.GetString("location"),
		Source:           record.GetString("source"),
		Destination:      record.GetString("destination"),
		Price:            decimal.NewFromFloat(record.GetFloat("price")),
		AvailableTickets: record.GetInt("available_tickets"),
		Plan:             plan,
		Status:           record.GetString("status"),
		Created:          record.GetDateTime("created").Time(),
	}, nil
}

func BookingFromRecord(record *core.Record) (*Booking, error) {
	seats := []string{}
	if raw := JSONField(record, "selected_seats"); len(raw) > 0 {
		if err := json.Unmarshal(raw, &seats); err != nil {
			return nil, err
		}
	}

	return &Booking{
		ID:            record.Id,
		UserID:        record.GetString("user"),
		EventID:       record.GetString("event"),
		Quantity:      record.GetInt("quantity"),
		SelectedSeats: seats,
		TotalAmount:   decimal.NewFromFloat(record.GetFloat("total_amount")),
		PaymentStatus: record.GetString("payment_status"),
		IsCancelled:   record.GetBool("is_cancelled"),
		Reference:     record.GetString("reference"),
		Created:       record.GetDateTime("created").Time(),
	}, nil
}
