package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	// CreateWithDetails reserves specific seats in one transaction: the
	// seats are locked and must still be available, confirmed tickets on
	// the schedule must not exceed the screen capacity, then the booking
	// and its per-seat details are inserted and the seats marked booked.
	// Oversubscription or a taken seat fails with ErrCapacityExceeded
	// and nothing is persisted.
	CreateWithDetails(ctx context.Context, booking *entity.Booking, details []*entity.BookingDetail, screenID uuid.UUID, capacity int) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	// Update and UpdateStatus free the booking's reserved seats in the
	// same transaction whenever the status lands on cancelled, so the
	// seat map cannot drift from booking state.
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	// Delete removes the booking together with its detail rows and
	// frees its seats in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, schedule_id, ticket_count, status, booking_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ScheduleID,
		booking.TicketCount,
		booking.Status,
		booking.BookingTime,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("schedule_id", booking.ScheduleID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) CreateWithDetails(ctx context.Context, booking *entity.Booking, details []*entity.BookingDetail, screenID uuid.UUID, capacity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seat reservation: %w", err)
	}
	defer tx.Rollback(ctx)

	seatIDs := make([]uuid.UUID, len(details))
	for i, d := range details {
		seatIDs[i] = d.SeatID
	}

	// Lock the requested seats so concurrent reservations serialize here.
	rows, err := tx.Query(ctx, `
		SELECT id, screen_id, status
		FROM seats
		WHERE id = ANY($1)
		FOR UPDATE
	`, seatIDs)
	if err != nil {
		return fmt.Errorf("lock seats: %w", err)
	}

	locked := make(map[uuid.UUID]entity.SeatStatus, len(seatIDs))
	for rows.Next() {
		var id, seatScreenID uuid.UUID
		var status entity.SeatStatus
		if err := rows.Scan(&id, &seatScreenID, &status); err != nil {
			rows.Close()
			return fmt.Errorf("scan locked seat: %w", err)
		}
		if seatScreenID != screenID {
			rows.Close()
			return fmt.Errorf("seat %s not on screen %s: %w", id.String(), screenID.String(), ErrInvalidInput)
		}
		locked[id] = status
	}
	rows.Close()
	if rows.Err() != nil {
		return fmt.Errorf("read locked seats: %w", rows.Err())
	}

	for _, seatID := range seatIDs {
		status, ok := locked[seatID]
		if !ok {
			return fmt.Errorf("seat %s: %w", seatID.String(), ErrNotFound)
		}
		if status != entity.SeatStatusAvailable {
			return fmt.Errorf("seat %s is %s: %w", seatID.String(), status, ErrCapacityExceeded)
		}
	}

	var confirmed int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(ticket_count), 0)
		FROM bookings
		WHERE schedule_id = $1 AND status = 'confirmed'
	`, booking.ScheduleID).Scan(&confirmed)
	if err != nil {
		return fmt.Errorf("sum confirmed tickets: %w", err)
	}

	if confirmed+booking.TicketCount > capacity {
		return fmt.Errorf("schedule %s has %d of %d seats taken: %w",
			booking.ScheduleID.String(), confirmed, capacity, ErrCapacityExceeded)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, user_id, schedule_id, ticket_count, status, booking_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		booking.ID,
		booking.UserID,
		booking.ScheduleID,
		booking.TicketCount,
		booking.Status,
		booking.BookingTime,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	for _, detail := range details {
		_, err = tx.Exec(ctx, `
			INSERT INTO booking_details (id, booking_id, seat_id, price, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
			detail.ID,
			detail.BookingID,
			detail.SeatID,
			detail.Price,
			detail.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create booking detail for seat %s: %w", detail.SeatID.String(), err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE seats SET status = $1, updated_at = NOW() WHERE id = ANY($2)
	`, entity.SeatStatusBooked, seatIDs)
	if err != nil {
		return fmt.Errorf("mark seats booked: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seat reservation: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, schedule_id, ticket_count, status, booking_time, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ScheduleID,
		&booking.TicketCount,
		&booking.Status,
		&booking.BookingTime,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	// Secondary ordering on id keeps reads stable when timestamps tie.
	query := `
		SELECT id, user_id, schedule_id, ticket_count, status, booking_time, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_time DESC, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ScheduleID,
			&booking.TicketCount,
			&booking.Status,
			&booking.BookingTime,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking update: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET ticket_count = $2, status = $3, updated_at = $4
		WHERE id = $1
	`,
		booking.ID,
		booking.TicketCount,
		booking.Status,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", booking.ID.String(), ErrNotFound)
	}

	if booking.Status == entity.BookingStatusCancelled {
		if err := releaseSeats(ctx, tx, booking.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking update: %w", err)
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", bookingID.String(), ErrNotFound)
	}

	if status == entity.BookingStatusCancelled {
		if err := releaseSeats(ctx, tx, bookingID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit status update: %w", err)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking delete: %w", err)
	}
	defer tx.Rollback(ctx)

	// Seats go back to available before the detail rows referencing
	// them are removed.
	if err := releaseSeats(ctx, tx, id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM booking_details WHERE booking_id = $1`, id); err != nil {
		r.log.Error("Failed to delete booking details",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking details for %s: %w", id.String(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking delete: %w", err)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

// releaseSeats frees every seat the booking had reserved. A plain
// ticket-count booking has no detail rows, so this is a no-op for it.
func releaseSeats(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE seats
		SET status = $1, updated_at = NOW()
		WHERE status = $2
		  AND id IN (SELECT seat_id FROM booking_details WHERE booking_id = $3)
	`, entity.SeatStatusAvailable, entity.SeatStatusBooked, bookingID)

	if err != nil {
		return fmt.Errorf("release seats for booking %s: %w", bookingID.String(), err)
	}

	return nil
}
