package handlers

import (
	"errors"

	"ticket-booking/internal/status"

	"github.com/pocketbase/pocketbase/apis"
)

// apiError maps service rejections onto API errors; anything unclassified is
// an unexpected persistence failure and surfaces as a generic server error.
func apiError(err error) error {
	var serr *status.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case status.KindNotFound:
			return apis.NewNotFoundError(serr.Message, nil)
		case status.KindForbidden:
			return apis.NewForbiddenError(serr.Message, nil)
		default:
			return apis.NewBadRequestError(serr.Message, nil)
		}
	}
	return apis.NewInternalServerError("Something went wrong while processing your request.", err)
}
