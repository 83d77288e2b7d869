package models

import "errors"

// Sentinel errors shared by the store and service layers. Handlers map
// these onto HTTP statuses; anything not in this list is treated as an
// internal error.
var (
	// ErrNotAuthenticated means no user is attached to the request.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound means the referenced record does not exist (or no
	// longer exists, e.g. a double-delete race on a cart line item).
	ErrNotFound = errors.New("record not found")

	// ErrValidation wraps malformed or missing user input.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyCart is returned by checkout when there is nothing to pay for.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInconsistentTotal is returned by checkout when the total the
	// client displayed no longer matches what the cart actually costs.
	ErrInconsistentTotal = errors.New("cart total changed since it was displayed")

	// ErrStoreUnavailable wraps transient backend failures. The caller is
	// expected to resubmit; nothing is retried automatically.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUploadFailed means the product image never made it to storage.
	// A product record is never written without a resolved image URL.
	ErrUploadFailed = errors.New("image upload failed")
)
