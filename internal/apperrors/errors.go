package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Core error taxonomy. Services return these (possibly wrapped with %w) and
// handlers map them onto the wire via Kind/StatusCode, so no endpoint ever
// re-invents its own classification.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrTenantUnavailable  = errors.New("tenant storefront is not available")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// Validation specifics, all wrapping ErrValidation so errors.Is works on
// either the broad class or the concrete cause.
var (
	ErrEmptyCart       = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrInvalidAddress  = fmt.Errorf("%w: delivery address is blank", ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrInvalidVariant  = fmt.Errorf("%w: unknown menu item variant", ErrValidation)
	ErrDuplicateSlug   = fmt.Errorf("%w: slug already taken", ErrValidation)
	ErrDuplicateEmail  = fmt.Errorf("%w: email already registered", ErrValidation)
)

var ErrOrderAlreadyPaid = fmt.Errorf("%w: order already paid", ErrInvalidTransition)

// Kind returns the stable machine-readable kind reported to clients.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrTenantUnavailable):
		return "tenant_unavailable"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrGatewayUnavailable):
		return "gateway_unavailable"
	default:
		return "internal"
	}
}

func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTenantUnavailable):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrGatewayUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
