package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-web/internal/repository/restapi"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Backend errors keep the backend's wording
	if apiErr, ok := restapi.IsAPIError(err); ok {
		switch apiErr.StatusCode {
		case http.StatusBadRequest:
			BadRequest(w, apiErr.Message, nil)
		case http.StatusNotFound:
			NotFound(w, apiErr.Message)
		case http.StatusConflict:
			Conflict(w, apiErr.Message)
		default:
			BadGateway(w, apiErr.Message)
		}
		return
	}

	switch {
	// Attendance UI state errors
	case errors.Is(err, attendance.ErrRowBusy),
		errors.Is(err, attendance.ErrBulkInFlight):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrEmptyFilter),
		errors.Is(err, attendance.ErrNoEmployee),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// Message returns the text a page banner shows for err
func Message(err error) string {
	if apiErr, ok := restapi.IsAPIError(err); ok {
		return apiErr.Message
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return validationErrs[0].Message
	}
	return restapi.GenericMessage
}
