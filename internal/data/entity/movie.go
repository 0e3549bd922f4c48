package entity

import (
	"time"
)

type Movie struct {
	Base
	Title             string    `db:"title"`
	Description       *string   `db:"description"`
	DurationInMinutes int       `db:"duration_in_minutes"`
	Rating            float64   `db:"rating"` // 0..10, enforced by a DB check constraint
	ReleaseDate       time.Time `db:"release_date"`
	TicketPrice       float64   `db:"ticket_price"`
	PosterURL         *string   `db:"poster_url"`
}
