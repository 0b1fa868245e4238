package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PlanKind tags the shape of an event's seat plan.
type PlanKind int

const (
	// PlanNone means the event has no seat plan and is booked by quantity
	// against Event.AvailableTickets.
	PlanNone PlanKind = iota
	// PlanSectioned generates seats "{section_id}-{n}" from section capacities.
	PlanSectioned
	// PlanEnumerated lists every seat explicitly.
	PlanEnumerated
)

type Section struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Capacity int              `json:"capacity"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

type SeatDef struct {
	ID    string           `json:"id"`
	Label string           `json:"label"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// SeatPlan is the tagged union of the two supported plan shapes. A nil price
// on a section or seat falls back to the event price.
type SeatPlan struct {
	Kind     PlanKind  `json:"-"`
	Sections []Section `json:"sections,omitempty"`
	Seats    []SeatDef `json:"seats,omitempty"`
}

// Seat describes one bookable unit derived from a seat plan.
type Seat struct {
	ID      string          `json:"id"`
	Section string          `json:"section,omitempty"`
	Label   string          `json:"label"`
	Price   decimal.Decimal `json:"price"`
}

// ParseSeatPlan decodes the raw seat_plan JSON of an event. A missing or
// "null" value yields PlanNone. A plan with a non-empty "sections" list wins
// over "seats" when both are present.
func ParseSeatPlan(raw []byte) (SeatPlan, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		return SeatPlan{Kind: PlanNone}, nil
	}

	var plan SeatPlan
	if err := json.Unmarshal(trimmed, &plan); err != nil {
		return SeatPlan{}, fmt.Errorf("invalid seat plan: %w", err)
	}

	for _, sec := range plan.Sections {
		if sec.Capacity < 0 {
			return SeatPlan{}, fmt.Errorf("invalid seat plan: section %q has negative capacity", sec.ID)
		}
		if sec.Price != nil && sec.Price.IsNegative() {
			return SeatPlan{}, fmt.Errorf("invalid seat plan: section %q has negative price", sec.ID)
		}
	}
	for _, seat := range plan.Seats {
		if seat.Price != nil && seat.Price.IsNegative() {
			return SeatPlan{}, fmt.Errorf("invalid seat plan: seat %q has negative price", seat.ID)
		}
	}

	switch {
	case len(plan.Sections) > 0:
		plan.Kind = PlanSectioned
		plan.Seats = nil
	case len(plan.Seats) > 0:
		plan.Kind = PlanEnumerated
	default:
		// A present but empty plan still counts as seat-based: it simply has
		// no bookable units. Only a missing plan maps to PlanNone.
		plan.Kind = PlanSectioned
	}

	return plan, nil
}

// AllSeats enumerates every seat the plan defines in plan-definition order.
// Returns nil for PlanNone.
func (p SeatPlan) AllSeats(fallbackPrice decimal.Decimal) []Seat {
	switch p.Kind {
	case PlanSectioned:
		seats := make([]Seat, 0)
		for _, sec := range p.Sections {
			price := fallbackPrice
			if sec.Price != nil {
				price = *sec.Price
			}
			name := sec.Name
			if name == "" {
				name = sec.ID
			}
			for i := 1; i <= sec.Capacity; i++ {
				seats = append(seats, Seat{
					ID:      fmt.Sprintf("%s-%d", sec.ID, i),
					Section: sec.ID,
					Label:   fmt.Sprintf("%s #%d", name, i),
					Price:   price,
				})
			}
		}
		return seats
	case PlanEnumerated:
		seats := make([]Seat, 0, len(p.Seats))
		for _, def := range p.Seats {
			price := fallbackPrice
			if def.Price != nil {
				price = *def.Price
			}
			label := def.Label
			if label == "" {
				label = def.ID
			}
			seats = append(seats, Seat{ID: def.ID, Label: label, Price: price})
		}
		return seats
	default:
		return nil
	}
}

// TotalSeats is the full capacity of the plan regardless of bookings.
func (p SeatPlan) TotalSeats() int {
	switch p.Kind {
	case PlanSectioned:
		n := 0
		for _, sec := range p.Sections {
			n += sec.Capacity
		}
		return n
	case PlanEnumerated:
		return len(p.Seats)
	default:
		return 0
	}
}
