package entity

type Screen struct {
	Base
	Name       string `db:"name"`
	TotalSeats int    `db:"total_seats"`
}
