package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName        = "bookings"
	EntityName       = "booking"
	ArchiveTableName = "bookings_backup"
	ArchiveEntity    = "archived booking"

	FieldID              = "id"
	FieldCreatedAt       = "created_at"
	FieldUserID          = "user_id"
	FieldTourID          = "tour_id"
	FieldBookingDate     = "booking_date"
	FieldNumberOfPeople  = "number_of_people"
	FieldTotalPrice      = "total_price"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"
	FieldContactPhone    = "contact_phone"
	FieldContactEmail    = "contact_email"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending         Status = "pending"
	StatusConfirmed       Status = "confirmed"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusCancelRequested Status = "cancel-requested"
)

// Statuses lists every lifecycle state in display order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusCancelRequested,
}

var transitions = map[Status][]Status{
	StatusPending:         {StatusConfirmed, StatusCancelled, StatusCancelRequested},
	StatusConfirmed:       {StatusCompleted, StatusCancelRequested},
	StatusCancelRequested: {StatusCancelled, StatusConfirmed},
	StatusCompleted:       {},
	StatusCancelled:       {},
}

// Valid reports whether s is one of the five lifecycle states.
func (s Status) Valid() bool {
	_, ok := transitions[s]

	return ok
}

// Terminal reports whether the booking can no longer change state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving from s to
// target. Guards beyond the matrix (ownership, booking date) live in the
// service layer.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

// Booking mirrors one row of the bookings table. The booking date travels as
// a plain calendar date; total price is fixed at creation time and never
// recomputed on edits.
type Booking struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UserID          string          `json:"user_id"`
	TourID          string          `json:"tour_id"`
	BookingDate     string          `json:"booking_date"`
	NumberOfPeople  int             `json:"number_of_people"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          Status          `json:"status"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	ContactEmail    string          `json:"contact_email,omitempty"`
}

// ArchivedBooking is the snapshot written to the backup table when a tour
// deletion removes its dependent bookings.
type ArchivedBooking struct {
	Booking
	ArchivedAt time.Time `json:"archived_at"`
}

// Archive wraps a live booking into its backup snapshot.
func Archive(booking Booking, at time.Time) ArchivedBooking {
	return ArchivedBooking{
		Booking:    booking,
		ArchivedAt: at,
	}
}
