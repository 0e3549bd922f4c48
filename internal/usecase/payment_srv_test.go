package usecase

import (
	"context"
	"testing"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPaymentConfirmsPendingBooking(t *testing.T) {
	env := newTestEnv()
	svc := NewPaymentService(env.repo, testLogger())

	owner := uuid.New()
	booking := env.seedBooking(owner, uuid.New(), 2, entity.BookingStatusPending)

	resp, err := svc.RecordPayment(context.Background(), booking.ID.String(), owner, &request.RecordPaymentRequest{
		Method: "credit_card",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, resp.Status)
	assert.Equal(t, "credit_card", resp.Method)
	assert.Equal(t, booking.ID.String(), resp.BookingID)

	stored := env.bookings.bookings[booking.ID]
	assert.Equal(t, entity.BookingStatusConfirmed, stored.Status,
		"payment capture moves a pending booking to confirmed")
}

func TestRecordPaymentOnConfirmedBooking(t *testing.T) {
	env := newTestEnv()
	svc := NewPaymentService(env.repo, testLogger())

	owner := uuid.New()
	booking := env.seedBooking(owner, uuid.New(), 2, entity.BookingStatusConfirmed)

	_, err := svc.RecordPayment(context.Background(), booking.ID.String(), owner, &request.RecordPaymentRequest{
		Method: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, env.bookings.bookings[booking.ID].Status)
}

func TestRecordPaymentOwnershipEnforced(t *testing.T) {
	env := newTestEnv()
	svc := NewPaymentService(env.repo, testLogger())

	booking := env.seedBooking(uuid.New(), uuid.New(), 2, entity.BookingStatusPending)

	_, err := svc.RecordPayment(context.Background(), booking.ID.String(), uuid.New(), &request.RecordPaymentRequest{
		Method: "credit_card",
	})
	assert.ErrorIs(t, err, repository.ErrForbidden)
	assert.Empty(t, env.payments.payments)
	assert.Equal(t, entity.BookingStatusPending, env.bookings.bookings[booking.ID].Status)
}

func TestRecordPaymentRejectsCancelledBooking(t *testing.T) {
	env := newTestEnv()
	svc := NewPaymentService(env.repo, testLogger())

	owner := uuid.New()
	booking := env.seedBooking(owner, uuid.New(), 2, entity.BookingStatusCancelled)

	_, err := svc.RecordPayment(context.Background(), booking.ID.String(), owner, &request.RecordPaymentRequest{
		Method: "credit_card",
	})
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)
	assert.Empty(t, env.payments.payments)
}

func TestRecordPaymentRejectsDuplicate(t *testing.T) {
	env := newTestEnv()
	svc := NewPaymentService(env.repo, testLogger())

	owner := uuid.New()
	booking := env.seedBooking(owner, uuid.New(), 2, entity.BookingStatusPending)

	_, err := svc.RecordPayment(context.Background(), booking.ID.String(), owner, &request.RecordPaymentRequest{
		Method: "credit_card",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), booking.ID.String(), owner, &request.RecordPaymentRequest{
		Method: "cash",
	})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
	assert.Len(t, env.payments.payments, 1)
}

func TestRecordPaymentUnknownBooking(t *testing.T) {
	env := newTestEnv()
	svc := NewPaymentService(env.repo, testLogger())

	_, err := svc.RecordPayment(context.Background(), uuid.New().String(), uuid.New(), &request.RecordPaymentRequest{
		Method: "credit_card",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
