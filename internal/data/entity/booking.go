package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus maps a caller-supplied string onto the closed
// status enum. Matching ignores case ("Confirmed" and "confirmed" are
// the same status); anything outside the three known values is
// rejected.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch status := BookingStatus(strings.ToLower(s)); status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return status, true
	default:
		return "", false
	}
}

// CanTransitionTo enforces the booking lifecycle:
// pending -> confirmed (payment captured), any -> cancelled,
// and same-status writes for ticket-count edits.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if next == BookingStatusCancelled {
		return true
	}
	if s == next {
		return s == BookingStatusPending || s == BookingStatusConfirmed
	}
	return s == BookingStatusPending && next == BookingStatusConfirmed
}

type Booking struct {
	Base
	UserID      uuid.UUID     `db:"user_id"`
	ScheduleID  uuid.UUID     `db:"schedule_id"`
	TicketCount int           `db:"ticket_count"`
	Status      BookingStatus `db:"status"`
	BookingTime time.Time     `db:"booking_time"`
}
