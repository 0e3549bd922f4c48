package repository

import (
	"movie-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Movie         MovieRepository
	Screen        ScreenRepository
	Seat          SeatRepository
	Schedule      ScheduleRepository
	Booking       BookingRepository
	BookingDetail BookingDetailRepository
	Payment       PaymentRepository
	Audit         AuditRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Movie:         NewMovieRepository(db, log),
		Screen:        NewScreenRepository(db, log),
		Seat:          NewSeatRepository(db, log),
		Schedule:      NewScheduleRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		BookingDetail: NewBookingDetailRepository(db, log),
		Payment:       NewPaymentRepository(db, log),
		Audit:         NewAuditRepository(db, log),
	}
}
