package handlers

import (
	"net/http"

	"ticket-booking/internal/services"
	"ticket-booking/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type BookingHandler struct {
	app     core.App
	booking *services.BookingService
}

func NewBookingHandler(app core.App, booking *services.BookingService) *BookingHandler {
	return &BookingHandler{
		app:     app,
		booking: booking,
	}
}

// Create books an event for the authenticated user.
func (h *BookingHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		EventID       string   `json:"event_id"`
		Quantity      int      `json:"quantity"`
		SelectedSeats []string `json:"selected_seats"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Quantity == 0 {
		// Omitted quantity defaults to one ticket, like the seat-based path
		// where quantity is derived from the seat list anyway.
		req.Quantity = 1
	}

	booking, err := h.booking.Create(e.Request.Context(), e.Auth.Id, services.CreateBookingInput{
		EventID:  req.EventID,
		Quantity: req.Quantity,
		SeatIDs:  req.SelectedSeats,
	})
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusCreated, h.bookingResponse(booking))
}

// History lists the authenticated user's bookings, newest first.
func (h *BookingHandler) History(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	bookings, err := h.booking.History(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}

	result := make([]map[string]any, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, h.bookingResponse(booking))
	}

	return e.JSON(http.StatusOK, result)
}

// CompletePayment marks the caller's booking as paid.
func (h *BookingHandler) CompletePayment(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	booking, err := h.booking.CompletePayment(e.Request.Context(), e.Auth.Id, e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, h.bookingResponse(booking))
}

// Cancel flips the caller's booking to cancelled and releases its seats.
func (h *BookingHandler) Cancel(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	booking, err := h.booking.Cancel(e.Request.Context(), e.Auth.Id, e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, h.bookingResponse(booking))
}

func (h *BookingHandler) bookingResponse(booking *models.Booking) map[string]any {
	data := map[string]any{
		"id":             booking.ID,
		"user":           booking.UserID,
		"event":          booking.EventID,
		"quantity":       booking.Quantity,
		"selected_seats": booking.SelectedSeats,
		"total_amount":   booking.TotalAmount.StringFixed(2),
		"payment_status": booking.PaymentStatus,
		"is_cancelled":   booking.IsCancelled,
		"reference":      booking.Reference,
		"booking_date":   booking.Created,
	}

	// Expand event details for display; the booking stays useful even if the
	// event record is gone.
	if event, err := h.app.FindRecordById("events", booking.EventID); err == nil {
		data["event_title"] = event.GetString("title")
		data["event_date"] = event.GetDateTime("date")
		data["event_category"] = event.GetString("category")
	}

	return data
}
