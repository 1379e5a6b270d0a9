package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps a use case error to its HTTP status. Order matters: a
// refused transition is a conflict even though it is also a bad value.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrRevisionLimitReached),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, ports.ErrOpenDisputeExists),
		errors.Is(err, dispute.ErrAlreadyResolved),
		errors.Is(err, commands.ErrDisputeFlowRequired):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidDeliveryType),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

func writeError(c echo.Context, err error) error {
	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		slog.Default().With("component", "http").Error("request failed",
			"method", c.Request().Method,
			"route", c.Path(),
			"error", err,
		)
		msg = "internal error"
	}
	return c.JSON(code, Error{Code: code, Message: msg})
}

// rejectionReason labels refused transitions for metrics.
func rejectionReason(err error) string {
	switch statusOf(err) {
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return "stale_version"
		}
		return "invalid_transition"
	case http.StatusBadRequest:
		return "bad_request"
	default:
		return "error"
	}
}
