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

// PaymentService owns the payment write path. The booking ledger does
// not call into it; the only coupling is the pending -> confirmed
// transition applied here once a payment is captured.
type PaymentService interface {
	RecordPayment(ctx context.Context, bookingID string, callerID uuid.UUID, req *request.RecordPaymentRequest) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, bookingID string, callerID uuid.UUID, req *request.RecordPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Record payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", repository.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking ID %s: %w", bookingID, repository.ErrInvalidInput)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrNotFound)
	}

	if booking.UserID != callerID {
		s.log.Warn("Payment ownership check failed",
			zap.String("booking_id", bookingID),
			zap.String("caller_id", callerID.String()),
		)
		return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrForbidden)
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s is cancelled: %w", bookingID, repository.ErrInvalidTransition)
	}

	// One payment per booking
	existing, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("booking %s already paid: %w", bookingID, repository.ErrInvalidInput)
	}

	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:   booking.ID,
		Method:      req.Method,
		Status:      entity.PaymentStatusCompleted,
		PaymentDate: now,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("record payment: %w", err)
	}

	// Payment capture is what moves a pending booking to confirmed.
	if booking.Status == entity.BookingStatusPending {
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed); err != nil {
			s.log.Error("Failed to confirm booking after payment",
				zap.Error(err),
				zap.String("booking_id", bookingID),
			)
			// Payment stands either way
		}
	}

	s.recordAudit(ctx, callerID, fmt.Sprintf("paid booking %s via %s", bookingID, req.Method))

	s.log.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", bookingID),
		zap.String("method", req.Method),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) recordAudit(ctx context.Context, userID uuid.UUID, action string) {
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
