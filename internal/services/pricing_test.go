package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestPrice_SeatBased(t *testing.T) {
	event := seatedEvent()
	req := &ValidatedRequest{
		Quantity: 2,
		SeatIDs:  []string{"A-1", "A-2"},
		SeatPrices: map[string]decimal.Decimal{
			"A-1": decimal.NewFromInt(100),
			"A-2": decimal.NewFromInt(60),
		},
		SeatBased: true,
	}

	total := Price(event, req)
	assert.Equal(t, "160.00", total.StringFixed(2))
}

func TestPrice_SeatBased_OrderIndependent(t *testing.T) {
	prices := map[string]decimal.Decimal{
		"A-1": mustDecimal(t, "33.335"),
		"A-2": mustDecimal(t, "33.335"),
	}
	event := seatedEvent()

	forward := Price(event, &ValidatedRequest{SeatIDs: []string{"A-1", "A-2"}, SeatPrices: prices, SeatBased: true})
	reverse := Price(event, &ValidatedRequest{SeatIDs: []string{"A-2", "A-1"}, SeatPrices: prices, SeatBased: true})

	assert.True(t, forward.Equal(reverse))
}

func TestPrice_SeatBased_RoundsOnceAtTheEnd(t *testing.T) {
	// 33.333 + 33.333 + 33.333 = 99.999, rounded once to 100.00. Rounding
	// per seat would give 99.99.
	price := mustDecimal(t, "33.333")
	req := &ValidatedRequest{
		SeatIDs: []string{"A-1", "A-2", "A-3"},
		SeatPrices: map[string]decimal.Decimal{
			"A-1": price, "A-2": price, "A-3": price,
		},
		SeatBased: true,
	}

	total := Price(seatedEvent(), req)
	assert.Equal(t, "100.00", total.StringFixed(2))
}

func TestPrice_SeatBased_MissingSeatPricesAsZero(t *testing.T) {
	req := &ValidatedRequest{
		SeatIDs: []string{"A-1", "ghost"},
		SeatPrices: map[string]decimal.Decimal{
			"A-1": decimal.NewFromInt(50),
		},
		SeatBased: true,
	}

	total := Price(seatedEvent(), req)
	assert.Equal(t, "50.00", total.StringFixed(2))
}

func TestPrice_Simple(t *testing.T) {
	event := simpleEvent()

	total := Price(event, &ValidatedRequest{Quantity: 3})
	assert.Equal(t, "60.00", total.StringFixed(2))
}

func TestPrice_Simple_FractionalPrice(t *testing.T) {
	event := simpleEvent()
	event.Price = mustDecimal(t, "19.99")

	total := Price(event, &ValidatedRequest{Quantity: 2})
	assert.Equal(t, "39.98", total.StringFixed(2))
}
