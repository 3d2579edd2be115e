package orders

import "errors"

// Error taxonomy for data service calls. The console never retries
// automatically: each failure surfaces once and the admin retries by hand.
var (
	ErrUnauthorized = errors.New("unauthorized: token invalid or expired")
	ErrNotFound     = errors.New("order not found")
	ErrValidation   = errors.New("data service rejected the payload")
	ErrConflict     = errors.New("order is referenced by another record")
	ErrNetwork      = errors.New("data service unreachable")
)

// Edit session errors (lihat editor.go).
var (
	ErrSessionBusy     = errors.New("edit session is saving; edits are blocked")
	ErrSessionNotReady = errors.New("edit session is not ready")
	ErrBadItemIndex    = errors.New("item index out of range")
	ErrBadFieldValue   = errors.New("invalid value for item field")
	ErrUnknownStatus   = errors.New("unknown order status")
)

// UserMessage maps a typed failure to the line shown to the administrator.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "Session expired, please log in again."
	case errors.Is(err, ErrNotFound):
		return "Order no longer exists."
	case errors.Is(err, ErrValidation):
		return "Failed to save the order."
	case errors.Is(err, ErrConflict):
		return "Order is referenced elsewhere and cannot be deleted."
	default:
		return "Something went wrong, please try again."
	}
}
