package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is one-to-one with a booking (booking_id unique).
type Payment struct {
	Base
	BookingID   uuid.UUID     `db:"booking_id"`
	Method      string        `db:"method"`
	Status      PaymentStatus `db:"status"`
	PaymentDate time.Time     `db:"payment_date"`
}
