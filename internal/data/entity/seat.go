package entity

import "github.com/google/uuid"

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusLocked    SeatStatus = "locked"
	SeatStatusBooked    SeatStatus = "booked"
)

type Seat struct {
	Base
	ScreenID   uuid.UUID  `db:"screen_id"`
	SeatNumber string     `db:"seat_number"` // A1, A2, B1, etc.
	SeatRow    string     `db:"seat_row"`    // A, B, C, etc.
	Status     SeatStatus `db:"status"`
}
