package request

type CreateBookingRequest struct {
	ScheduleID  string `json:"schedule_id" validate:"required,uuid4"`
	TicketCount int    `json:"ticket_count" validate:"required,gt=0"`
	// SeatIDs is optional. When present the booking goes through the
	// transactional seat reservation and must list exactly ticket_count
	// seats; when absent only the ticket count is recorded.
	SeatIDs []string `json:"seat_ids,omitempty" validate:"omitempty,min=1,dive,uuid4"`
}

type UpdateBookingRequest struct {
	TicketCount int    `json:"ticket_count" validate:"required,gt=0"`
	Status      string `json:"status" validate:"required"`
}

type RecordPaymentRequest struct {
	Method string `json:"method" validate:"required,min=2,max=50"`
}
