package handlers

import (
	"encoding/json"
	"net/http"

	"ticket-booking/internal/services"
	"ticket-booking/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AdminHandler struct {
	app   core.App
	stats *services.StatsService
}

func NewAdminHandler(app core.App, stats *services.StatsService) *AdminHandler {
	return &AdminHandler{
		app:   app,
		stats: stats,
	}
}

// requireAdmin accepts records with the admin role and superusers.
func requireAdmin(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	if e.HasSuperuserAuth() || e.Auth.GetString("role") == "admin" {
		return nil
	}
	return apis.NewForbiddenError("Admin access required.", nil)
}

var eventWriteFields = []string{
	"title", "description", "category", "date", "location",
	"source", "destination", "price", "available_tickets",
	"seat_plan", "status",
}

// ListEvents returns all events, newest first.
func (h *AdminHandler) ListEvents(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	records, err := h.app.FindRecordsByFilter("events", "id != ''", "-created", 0, 0)
	if err != nil {
		return apis.NewBadRequestError("Failed to list events", err)
	}

	result := make([]map[string]any, 0, len(records))
	for _, record := range records {
		result = append(result, adminEventResponse(record))
	}

	return e.JSON(http.StatusOK, result)
}

// CreateEvent adds an event to the catalog.
func (h *AdminHandler) CreateEvent(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	var body map[string]any
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if title, _ := body["title"].(string); title == "" {
		return apis.NewBadRequestError("title is required.", nil)
	}
	if err := validateSeatPlanField(body); err != nil {
		return apis.NewBadRequestError(err.Error(), err)
	}

	collection, err := h.app.FindCollectionByNameOrId("events")
	if err != nil {
		return apis.NewInternalServerError("Failed to load events collection", err)
	}

	record := core.NewRecord(collection)
	record.Set("category", models.CategoryEvent)
	record.Set("status", models.EventStatusActive)
	applyEventFields(record, body)

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to create event", err)
	}

	return e.JSON(http.StatusCreated, adminEventResponse(record))
}

// UpdateEvent applies a partial update to an event.
func (h *AdminHandler) UpdateEvent(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	record, err := h.app.FindRecordById("events", e.Request.PathValue("id"))
	if err != nil {
		return apis.NewNotFoundError("Event not found.", err)
	}

	var body map[string]any
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := validateSeatPlanField(body); err != nil {
		return apis.NewBadRequestError(err.Error(), err)
	}

	applyEventFields(record, body)

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to update event", err)
	}

	return e.JSON(http.StatusOK, adminEventResponse(record))
}

// DeleteEvent removes an event entirely.
func (h *AdminHandler) DeleteEvent(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	record, err := h.app.FindRecordById("events", e.Request.PathValue("id"))
	if err != nil {
		return apis.NewNotFoundError("Event not found.", err)
	}

	if err := h.app.Delete(record); err != nil {
		return apis.NewBadRequestError("Failed to delete event", err)
	}

	return e.NoContent(http.StatusNoContent)
}

// CancelEvent flips an event to cancelled; subsequent booking validations
// reject it immediately. There is no resurrection.
func (h *AdminHandler) CancelEvent(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	var req struct {
		EventID string `json:"event_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.EventID == "" {
		return apis.NewBadRequestError("event_id required", nil)
	}

	record, err := h.app.FindRecordById("events", req.EventID)
	if err != nil {
		return apis.NewNotFoundError("Event not found.", err)
	}

	record.Set("status", models.EventStatusCancelled)
	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to cancel event", err)
	}

	return e.JSON(http.StatusOK, adminEventResponse(record))
}

// ListUsers returns every registered user.
func (h *AdminHandler) ListUsers(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	records, err := h.app.FindRecordsByFilter("users", "id != ''", "created", 0, 0)
	if err != nil {
		return apis.NewBadRequestError("Failed to list users", err)
	}

	result := make([]map[string]any, 0, len(records))
	for _, record := range records {
		result = append(result, map[string]any{
			"id":       record.Id,
			"username": record.GetString("username"),
			"email":    record.GetString("email"),
			"role":     record.GetString("role"),
		})
	}

	return e.JSON(http.StatusOK, result)
}

// ListBookings returns every booking with user and event details expanded.
func (h *AdminHandler) ListBookings(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	records, err := h.app.FindRecordsByFilter("bookings", "id != ''", "-created", 0, 0)
	if err != nil {
		return apis.NewBadRequestError("Failed to list bookings", err)
	}

	result := make([]map[string]any, 0, len(records))
	for _, record := range records {
		booking, err := models.BookingFromRecord(record)
		if err != nil {
			return apiError(err)
		}

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
		if user, err := h.app.FindRecordById("users", booking.UserID); err == nil {
			data["user_username"] = user.GetString("username")
			data["user_email"] = user.GetString("email")
		}
		if event, err := h.app.FindRecordById("events", booking.EventID); err == nil {
			data["event_title"] = event.GetString("title")
			data["event_date"] = event.GetDateTime("date")
			data["event_category"] = event.GetString("category")
		}

		result = append(result, data)
	}

	return e.JSON(http.StatusOK, result)
}

// Stats returns the aggregate dashboard numbers.
func (h *AdminHandler) Stats(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	stats, err := h.stats.Overview(e.Request.Context())
	if err != nil {
		return apis.NewInternalServerError("Failed to compute stats", err)
	}

	return e.JSON(http.StatusOK, stats)
}

func applyEventFields(record *core.Record, body map[string]any) {
	for _, field := range eventWriteFields {
		if value, ok := body[field]; ok {
			record.Set(field, value)
		}
	}
}

func validateSeatPlanField(body map[string]any) error {
	value, ok := body["seat_plan"]
	if !ok || value == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = models.ParseSeatPlan(raw)
	return err
}

func adminEventResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":                record.Id,
		"title":             record.GetString("title"),
		"description":       record.GetString("description"),
		"category":          record.GetString("category"),
		"date":              record.GetDateTime("date"),
		"location":          record.GetString("location"),
		"source":            record.GetString("source"),
		"destination":       record.GetString("destination"),
		"price":             record.GetFloat("price"),
		"available_tickets": record.GetInt("available_tickets"),
		"seat_plan":         record.Get("seat_plan"),
		"status":            record.GetString("status"),
		"created":           record.GetDateTime("created"),
	}
}
