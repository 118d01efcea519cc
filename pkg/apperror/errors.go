package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Payment orders (PAY) ----

func ErrInvalidAmount() *AppError {
	return New("PAY_001", "Amount must be a positive decimal number", http.StatusBadRequest)
}

func ErrUnsupportedCurrency(currency string) *AppError {
	return New("PAY_003", fmt.Sprintf("Unsupported currency %q", currency), http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidStatus(current, wanted string) *AppError {
	return New("PAY_005", fmt.Sprintf("Order is %s, expected %s", current, wanted), http.StatusConflict)
}

func ErrIndexExhausted() *AppError {
	return New("PAY_006", "Derivation index space exhausted", http.StatusServiceUnavailable)
}

// ---- Chain (CHAIN) ----

func ErrRPCUnavailable(err error) *AppError {
	return Wrap("CHAIN_001", "Blockchain RPC unavailable", http.StatusBadGateway, err)
}

func ErrInsufficientGas() *AppError {
	return New("CHAIN_002", "Address has insufficient gas, fund it first", http.StatusConflict)
}

func ErrInsufficientReservoir() *AppError {
	return New("CHAIN_003", "Gas reservoir balance too low", http.StatusConflict)
}

func ErrInvalidAddress() *AppError {
	return New("CHAIN_004", "Invalid address", http.StatusBadRequest)
}

// ---- Settlement (SETTLE) ----

func ErrSettlementQueueFull() *AppError {
	return New("SETTLE_001", "Settlement queue is full", http.StatusServiceUnavailable)
}

func ErrSettlementInProgress() *AppError {
	return New("SETTLE_002", "Settlement already in progress for this order", http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidAPIKey() *AppError {
	return New("AUTH_001", "Invalid API key", http.StatusUnauthorized)
}

func ErrMerchantSuspended() *AppError {
	return New("AUTH_002", "Merchant account is suspended", http.StatusForbidden)
}

func ErrInvalidAdminSecret() *AppError {
	return New("AUTH_003", "Invalid admin credential", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_004", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_002 validation error.
func Validation(message string) *AppError {
	return New("PAY_002", message, http.StatusBadRequest)
}
