package entity

import "github.com/google/uuid"

// BookingDetail is a per-seat line item within a booking. The
// (seat_id, booking_id) pair is unique at the database level.
type BookingDetail struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	SeatID    uuid.UUID `db:"seat_id"`
	Price     float64   `db:"price"`
}
