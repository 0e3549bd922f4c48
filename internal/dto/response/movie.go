package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       *string `json:"description,omitempty"`
	DurationInMinutes int     `json:"duration_in_minutes"`
	Rating            float64 `json:"rating"`
	ReleaseDate       string  `json:"release_date"`
	TicketPrice       float64 `json:"ticket_price"`
	PosterURL         *string `json:"poster_url,omitempty"`
}

type SeatResponse struct {
	ID         string            `json:"id"`
	SeatNumber string            `json:"seat_number"`
	SeatRow    string            `json:"seat_row"`
	Status     entity.SeatStatus `json:"status"`
}

type ScheduleResponse struct {
	ID       string    `json:"id"`
	MovieID  string    `json:"movie_id"`
	ScreenID string    `json:"screen_id"`
	ShowTime time.Time `json:"show_time"`
	Price    float64   `json:"price"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Description:       movie.Description,
		DurationInMinutes: movie.DurationInMinutes,
		Rating:            movie.Rating,
		ReleaseDate:       movie.ReleaseDate.Format("2006-01-02"),
		TicketPrice:       movie.TicketPrice,
		PosterURL:         movie.PosterURL,
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:         seat.ID.String(),
		SeatNumber: seat.SeatNumber,
		SeatRow:    seat.SeatRow,
		Status:     seat.Status,
	}
}

func ScheduleToResponse(schedule *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:       schedule.ID.String(),
		MovieID:  schedule.MovieID.String(),
		ScreenID: schedule.ScreenID.String(),
		ShowTime: schedule.ShowTime,
		Price:    schedule.Price,
	}
}
