package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingDetailRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingDetail, error)
}

type bookingDetailRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingDetailRepository(db database.PgxIface, log *zap.Logger) BookingDetailRepository {
	return &bookingDetailRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_detail")),
	}
}

func (r *bookingDetailRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingDetail, error) {
	query := `
		SELECT id, booking_id, seat_id, price, created_at
		FROM booking_details
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking details",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking details for %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var details []*entity.BookingDetail
	for rows.Next() {
		var detail entity.BookingDetail
		err := rows.Scan(
			&detail.ID,
			&detail.BookingID,
			&detail.SeatID,
			&detail.Price,
			&detail.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking detail row", zap.Error(err))
			return nil, fmt.Errorf("scan booking detail row: %w", err)
		}
		details = append(details, &detail)
	}

	return details, nil
}
