package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidCard     = "INVALID_CARD_NUMBER"
	ErrCodeCardExpired     = "CARD_EXPIRED"
	ErrCodeOrderFailed     = "ORDER_FAILED"
	ErrCodeNetworkError    = "NETWORK_ERROR"
	ErrCodeBuyerNotFound   = "BUYER_NOT_FOUND"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeEmptyOrder      = "EMPTY_ORDER"
	ErrCodeUnknownKind     = "UNKNOWN_ORDER_KIND"
	ErrCodeOrderNotFound   = "ORDER_NOT_FOUND"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// IsDomainError reports whether err wraps a *DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// Common domain errors. The messages are shown to the buyer verbatim.
var (
	ErrCardExpired     = NewDomainError(ErrCodeCardExpired, "Your card is expired. Please choose a valid payment method or use Cash on Delivery.")
	ErrOrderFailed     = NewDomainError(ErrCodeOrderFailed, "Order Failed")
	ErrNetworkError    = NewDomainError(ErrCodeNetworkError, "Network Error")
	ErrMissingField    = NewDomainError(ErrCodeMissingField, "Card details are required unless Cash on Delivery is selected")
	ErrInvalidCard     = NewDomainError(ErrCodeInvalidCard, "Card number must contain digits only")
	ErrBuyerNotFound   = NewDomainError(ErrCodeBuyerNotFound, "Buyer not found")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found in cart")
	ErrEmptyOrder      = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one product")
	ErrUnknownKind     = NewDomainError(ErrCodeUnknownKind, "Unknown order kind")
)
