package handlers

import (
	"net/http"
	"strings"
	"time"

	"ticket-booking/internal/services"
	"ticket-booking/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type EventHandler struct {
	app      core.App
	resolver *services.AvailabilityResolver
}

func NewEventHandler(app core.App, resolver *services.AvailabilityResolver) *EventHandler {
	return &EventHandler{
		app:      app,
		resolver: resolver,
	}
}

// List returns all events ordered by date, optionally filtered by source,
// destination and day (for bus/train searches).
func (h *EventHandler) List(e *core.RequestEvent) error {
	filters := []string{}
	params := dbx.Params{}

	query := e.Request.URL.Query()
	if source := strings.TrimSpace(query.Get("source")); source != "" {
		filters = append(filters, "source ~ {:source}")
		params["source"] = source
	}
	if destination := strings.TrimSpace(query.Get("destination")); destination != "" {
		filters = append(filters, "destination ~ {:destination}")
		params["destination"] = destination
	}
	if dateStr := strings.TrimSpace(query.Get("date")); dateStr != "" {
		// Unparseable dates are ignored rather than rejected.
		if day, err := time.Parse("2006-01-02", dateStr); err == nil {
			filters = append(filters, "date >= {:dayStart} && date < {:dayEnd}")
			params["dayStart"] = day.Format("2006-01-02 15:04:05.000Z")
			params["dayEnd"] = day.AddDate(0, 0, 1).Format("2006-01-02 15:04:05.000Z")
		}
	}

	filter := "id != ''"
	if len(filters) > 0 {
		filter = strings.Join(filters, " && ")
	}

	records, err := h.app.FindRecordsByFilter("events", filter, "date", 0, 0, params)
	if err != nil {
		return apis.NewBadRequestError("Failed to list events", err)
	}

	result := make([]map[string]any, 0, len(records))
	for _, record := range records {
		data, err := h.eventResponse(e, record)
		if err != nil {
			return apiError(err)
		}
		result = append(result, data)
	}

	return e.JSON(http.StatusOK, result)
}

// Detail returns one event with its live seat availability.
func (h *EventHandler) Detail(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("events", e.Request.PathValue("id"))
	if err != nil {
		return apis.NewNotFoundError("Event not found.", err)
	}

	data, err := h.eventResponse(e, record)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, data)
}

func (h *EventHandler) eventResponse(e *core.RequestEvent, record *core.Record) (map[string]any, error) {
	event, err := models.EventFromRecord(record)
	if err != nil {
		return nil, err
	}

	available, err := h.resolver.Resolve(e.Request.Context(), event)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"id":                event.ID,
		"title":             event.Title,
		"description":       event.Description,
		"category":          event.Category,
		"date":              record.GetDateTime("date"),
		"location":          event.Location,
		"source":            event.Source,
		"destination":       event.Destination,
		"price":             event.Price.StringFixed(2),
		"available_tickets": event.AvailableTickets,
		"seat_plan":         record.Get("seat_plan"),
		"status":            event.Status,
		"created":           record.GetDateTime("created"),
		"seat_count":        services.SeatCount(event),
	}

	// null for simple events: the client reads available_tickets instead.
	if available != nil {
		data["available_seats"] = available
	} else {
		data["available_seats"] = nil
	}

	return data, nil
}
