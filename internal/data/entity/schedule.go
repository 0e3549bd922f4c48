package entity

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	Base
	MovieID  uuid.UUID `db:"movie_id"`
	ScreenID uuid.UUID `db:"screen_id"`
	ShowTime time.Time `db:"show_time"`
	Price    float64   `db:"price"` // per-schedule price, distinct from Movie.TicketPrice
}
