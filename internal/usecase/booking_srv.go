package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService is the booking ledger. Every call takes the caller's
// user ID explicitly; nothing in here reads session state, and every
// read or mutation of an existing booking goes through the ownership
// check in ownedBooking.
type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string, callerID uuid.UUID) (*response.BookingDetailResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, callerID uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string, callerID uuid.UUID) error
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", repository.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	if req.TicketCount <= 0 {
		return nil, fmt.Errorf("ticket count must be positive: %w", repository.ErrInvalidInput)
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("schedule ID %s: %w", req.ScheduleID, repository.ErrInvalidInput)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", req.ScheduleID, repository.ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, schedule.MovieID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie for schedule %s: %w", req.ScheduleID, repository.ErrNotFound)
	}

	unitPrice := s.unitPrice(movie, schedule)

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		ScheduleID:  scheduleID,
		TicketCount: req.TicketCount,
		Status:      entity.BookingStatusConfirmed,
		BookingTime: now,
	}

	var seatNumbers []string
	if len(req.SeatIDs) == 0 {
		// Plain ticket-count booking. No capacity check happens on this
		// path: two concurrent bookings against the same schedule can
		// jointly exceed the screen. Seat-level reservations are the
		// guarded alternative.
		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("schedule_id", req.ScheduleID),
			)
			return nil, fmt.Errorf("create booking: %w", err)
		}
	} else {
		seatNumbers, err = s.createWithSeats(ctx, booking, schedule, unitPrice, req)
		if err != nil {
			return nil, err
		}
	}

	s.recordAudit(ctx, userID, fmt.Sprintf("booked %d ticket(s) for schedule %s", req.TicketCount, req.ScheduleID))

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("ticket_count", req.TicketCount),
		zap.Float64("total_price", float64(req.TicketCount)*unitPrice),
	)

	resp := s.buildBookingResponse(booking, movie, schedule, unitPrice, seatNumbers)
	return resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		// Missing schedule or movie rows degrade to a zero total rather
		// than failing the whole listing.
		var movie *entity.Movie
		schedule, _ := s.repo.Schedule.FindByID(ctx, booking.ScheduleID)
		if schedule != nil {
			movie, _ = s.repo.Movie.FindByID(ctx, schedule.MovieID)
		}

		unitPrice := 0.0
		if movie != nil && schedule != nil {
			unitPrice = s.unitPrice(movie, schedule)
		}

		seatNumbers := s.seatNumbersForBooking(ctx, booking.ID)

		bookingResponses[i] = *s.buildBookingResponse(booking, movie, schedule, unitPrice, seatNumbers)
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(bookings)),
	)

	return bookingResponses, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string, callerID uuid.UUID) (*response.BookingDetailResponse, error) {
	booking, err := s.ownedBooking(ctx, bookingID, callerID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, booking.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule for booking %s: %w", bookingID, repository.ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, schedule.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie for booking %s: %w", bookingID, repository.ErrNotFound)
	}

	seatNumbers := s.seatNumbersForBooking(ctx, booking.ID)

	return &response.BookingDetailResponse{
		BookingResponse: *s.buildBookingResponse(booking, movie, schedule, s.unitPrice(movie, schedule), seatNumbers),
		Movie:           response.MovieToResponse(movie),
	}, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, callerID uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", repository.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	booking, err := s.ownedBooking(ctx, bookingID, callerID)
	if err != nil {
		return nil, err
	}

	if req.TicketCount <= 0 {
		return nil, fmt.Errorf("ticket count must be positive: %w", repository.ErrInvalidInput)
	}

	newStatus, ok := entity.ParseBookingStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("status %q: %w", req.Status, repository.ErrInvalidInput)
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%s -> %s: %w", booking.Status, newStatus, repository.ErrInvalidTransition)
	}

	booking.TicketCount = req.TicketCount
	booking.Status = newStatus
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.recordAudit(ctx, callerID, fmt.Sprintf("updated booking %s to %d ticket(s), status %s", bookingID, req.TicketCount, newStatus))

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.Int("ticket_count", req.TicketCount),
		zap.String("status", string(newStatus)),
	)

	var movie *entity.Movie
	schedule, _ := s.repo.Schedule.FindByID(ctx, booking.ScheduleID)
	if schedule != nil {
		movie, _ = s.repo.Movie.FindByID(ctx, schedule.MovieID)
	}

	unitPrice := 0.0
	if movie != nil && schedule != nil {
		unitPrice = s.unitPrice(movie, schedule)
	}

	return s.buildBookingResponse(booking, movie, schedule, unitPrice, s.seatNumbersForBooking(ctx, booking.ID)), nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string, callerID uuid.UUID) error {
	// Ownership is checked on every delete path; there is no admin-style
	// shortcut around it.
	booking, err := s.ownedBooking(ctx, bookingID, callerID)
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		s.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("delete booking: %w", err)
	}

	s.recordAudit(ctx, callerID, fmt.Sprintf("deleted booking %s", bookingID))

	return nil
}

// ==================== HELPER METHODS ====================

// ownedBooking resolves a booking and verifies the caller owns it.
// Every ledger operation on an existing booking funnels through here.
func (s *bookingService) ownedBooking(ctx context.Context, bookingID string, callerID uuid.UUID) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking ID %s: %w", bookingID, repository.ErrInvalidInput)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrNotFound)
	}

	if booking.UserID != callerID {
		s.log.Warn("Ownership check failed",
			zap.String("booking_id", bookingID),
			zap.String("owner_id", booking.UserID.String()),
			zap.String("caller_id", callerID.String()),
		)
		return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrForbidden)
	}

	return booking, nil
}

// unitPrice picks the per-ticket price. The movie's ticket price is the
// historical behavior; the per-schedule price sits behind the pricing
// source config until the discrepancy between the two fields is
// resolved.
func (s *bookingService) unitPrice(movie *entity.Movie, schedule *entity.Schedule) float64 {
	if s.config.Booking.PricingSource == utils.PricingSourceSchedule {
		return schedule.Price
	}
	return movie.TicketPrice
}

func (s *bookingService) createWithSeats(ctx context.Context, booking *entity.Booking, schedule *entity.Schedule, unitPrice float64, req *request.CreateBookingRequest) ([]string, error) {
	if len(req.SeatIDs) != req.TicketCount {
		return nil, fmt.Errorf("%d seat(s) for %d ticket(s): %w", len(req.SeatIDs), req.TicketCount, repository.ErrInvalidInput)
	}

	seatIDs := make([]uuid.UUID, len(req.SeatIDs))
	for i, seatIDStr := range req.SeatIDs {
		seatID, err := uuid.Parse(seatIDStr)
		if err != nil {
			return nil, fmt.Errorf("seat ID %s: %w", seatIDStr, repository.ErrInvalidInput)
		}
		seatIDs[i] = seatID
	}

	screen, err := s.repo.Screen.FindByID(ctx, schedule.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if screen == nil {
		return nil, fmt.Errorf("screen for schedule %s: %w", schedule.ID.String(), repository.ErrNotFound)
	}

	details := make([]*entity.BookingDetail, len(seatIDs))
	for i, seatID := range seatIDs {
		details[i] = &entity.BookingDetail{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: booking.CreatedAt,
			},
			BookingID: booking.ID,
			SeatID:    seatID,
			Price:     unitPrice,
		}
	}

	if err := s.repo.Booking.CreateWithDetails(ctx, booking, details, schedule.ScreenID, screen.TotalSeats); err != nil {
		s.log.Warn("Seat reservation failed",
			zap.Error(err),
			zap.String("schedule_id", schedule.ID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, err
	}

	seatNumbers := make([]string, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		seat, _ := s.repo.Seat.FindByID(ctx, seatID)
		if seat != nil {
			seatNumbers = append(seatNumbers, seat.SeatNumber)
		}
	}

	return seatNumbers, nil
}

func (s *bookingService) seatNumbersForBooking(ctx context.Context, bookingID uuid.UUID) []string {
	details, _ := s.repo.BookingDetail.FindByBookingID(ctx, bookingID)
	if len(details) == 0 {
		return nil
	}

	seatNumbers := make([]string, 0, len(details))
	for _, detail := range details {
		seat, _ := s.repo.Seat.FindByID(ctx, detail.SeatID)
		if seat != nil {
			seatNumbers = append(seatNumbers, seat.SeatNumber)
		}
	}

	return seatNumbers
}

func (s *bookingService) buildBookingResponse(booking *entity.Booking, movie *entity.Movie, schedule *entity.Schedule, unitPrice float64, seatNumbers []string) *response.BookingResponse {
	resp := &response.BookingResponse{
		ID:          booking.ID.String(),
		UserID:      booking.UserID.String(),
		ScheduleID:  booking.ScheduleID.String(),
		TicketCount: booking.TicketCount,
		TotalPrice:  float64(booking.TicketCount) * unitPrice,
		Status:      booking.Status,
		SeatNumbers: seatNumbers,
		BookingTime: booking.BookingTime,
	}

	if movie != nil {
		resp.MovieTitle = movie.Title
	}
	if schedule != nil {
		showTime := schedule.ShowTime
		resp.ShowTime = &showTime
	}

	return resp
}

func (s *bookingService) recordAudit(ctx context.Context, userID uuid.UUID, action string) {
	entry := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID: userID,
		Action: action,
	}

	if err := s.repo.Audit.Create(ctx, entry); err != nil {
		s.log.Warn("Failed to record audit entry",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("action", action))
	}
}
