package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	ScheduleID  string               `json:"schedule_id"`
	MovieTitle  string               `json:"movie_title,omitempty"`
	ShowTime    *time.Time           `json:"show_time,omitempty"`
	TicketCount int                  `json:"ticket_count"`
	TotalPrice  float64              `json:"total_price"`
	Status      entity.BookingStatus `json:"status"`
	SeatNumbers []string             `json:"seat_numbers,omitempty"`
	BookingTime time.Time            `json:"booking_time"`
}

type BookingDetailResponse struct {
	BookingResponse
	Movie MovieResponse `json:"movie"`
}

type PaymentResponse struct {
	ID          string               `json:"id"`
	BookingID   string               `json:"booking_id"`
	Method      string               `json:"method"`
	Status      entity.PaymentStatus `json:"status"`
	PaymentDate time.Time            `json:"payment_date"`
}

type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          payment.ID.String(),
		BookingID:   payment.BookingID.String(),
		Method:      payment.Method,
		Status:      payment.Status,
		PaymentDate: payment.PaymentDate,
	}
}

func AuditEntryToResponse(entry *entity.AuditLog) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        entry.ID.String(),
		Action:    entry.Action,
		Timestamp: entry.CreatedAt,
	}
}
