package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sanjkatariya/infraFix/internal/models"
)

// RequestError is a client mistake in the request itself (bad JSON,
// missing or invalid fields). It always maps to 400.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func BadRequest(msg string) error { return &RequestError{Msg: msg} }

// ErrorStatus maps store and request errors to an HTTP status and a
// client-facing message. Unknown errors are 500 with the error text.
func ErrorStatus(err error) (int, string) {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, reqErr.Msg
	case errors.Is(err, models.ErrComplaintNotFound):
		return http.StatusNotFound, "Complaint not found"
	case errors.Is(err, models.ErrWorkOrderNotFound):
		return http.StatusNotFound, "Workorder not found"
	case errors.Is(err, models.ErrCrewNotFound):
		return http.StatusNotFound, "Crew member not found"
	case errors.Is(err, models.ErrInventoryNotFound):
		return http.StatusNotFound, "Inventory item not found"
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, models.ErrDuplicateID):
		return http.StatusConflict, "A record with this id already exists"
	case errors.Is(err, models.ErrComplaintHasWorkOrders):
		return http.StatusConflict, "Complaint has work orders"
	case errors.Is(err, models.ErrInvalidStockAction):
		return http.StatusBadRequest, "Invalid stock action: must be add, subtract or set"
	case errors.Is(err, models.ErrQuantityRequired):
		return http.StatusBadRequest, "Missing required fields: quantity"
	}
	return http.StatusInternalServerError, err.Error()
}

// Error writes err as a failure envelope. Server errors are logged.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
	}
	Fail(w, status, msg)
}
