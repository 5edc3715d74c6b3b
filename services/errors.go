package services

import "errors"

// Validation errors: bad input, surfaced as 400.
var (
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrBadQuantity      = errors.New("item quantity must be at least 1")
	ErrGuestContact     = errors.New("guest orders require a name and an email")
	ErrIdentityConflict = errors.New("order must be either a member order or a guest order, not both")
	ErrMinRedeem        = errors.New("minimum redemption is 100 points")
)

// Not-found errors, surfaced as 404. Unknown and malformed tracking tokens
// deliberately produce the same outcome.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownMenuItem = errors.New("menu item not found for this shop")
)

// Conflict errors: the request is valid but state disallows it. Surfaced as 409 with
// the specific reason.
var (
	ErrPickupTooSoon      = errors.New("pickup time must be at least 30 minutes from now")
	ErrPickupTooFar       = errors.New("pickup time cannot be more than 7 days ahead")
	ErrShopClosed         = errors.New("the shop is closed at the requested time")
	ErrSlotFull           = errors.New("this time slot is fully booked")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInsufficientPoints = errors.New("insufficient points balance")
	ErrNoCoffeesLeft      = errors.New("no coffees remaining in this period")
	ErrNotActiveMember    = errors.New("no active membership")
	ErrFeatureDisabled    = errors.New("feature is not enabled for this shop")
)

// External-dependency errors. The caller sees a generic failure.
var (
	ErrPaymentUnavailable = errors.New("payment could not be initiated")
)
