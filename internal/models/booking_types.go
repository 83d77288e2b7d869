package models

import "time"

// Service type tags stored on each booking.
const (
	ServiceInternetCafe = "Internet Cafe"
	ServicePhoneRepair  = "Phone Repair"
)

// Booking statuses. Submission only ever writes StatusPending; the later
// states are set by the back-office staff tooling, not by this API.
const (
	StatusPending        = "Pending"
	StatusInProgress     = "InProgress"
	StatusReadyForPickup = "ReadyForPickup"
	StatusPendingParts   = "PendingParts"
	StatusCompleted      = "Completed"
)

// Booking is the model for the 'bookings' table. Both service types share
// the one table; the service-specific fields are nullable and use pointers
// so the unused half stays out of the JSON.
type Booking struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"userId" db:"user_id"`
	ServiceType string `json:"serviceType" db:"service_type"`
	Status      string `json:"status" db:"status"`

	// Internet cafe fields
	Date     *string `json:"date,omitempty" db:"date"`
	Time     *string `json:"time,omitempty" db:"time"`
	Duration *string `json:"duration,omitempty" db:"duration"`
	NumUsers *string `json:"numUsers,omitempty" db:"num_users"`

	// Phone repair fields
	Name    *string `json:"name,omitempty" db:"name"`
	Phone   *string `json:"phone,omitempty" db:"phone"`
	Email   *string `json:"email,omitempty" db:"email"`
	Device  *string `json:"device,omitempty" db:"device"`
	Problem *string `json:"problem,omitempty" db:"problem"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
