package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The catalog is read-only and public; anyone can browse movies
	// and showtimes without an account.

	// GET /api/movies - List all movies
	r.Get("/api/movies", catalogHandler.ListMovies)

	// GET /api/movies/{id} - Movie details
	r.Get("/api/movies/{id}", catalogHandler.GetMovie)

	// GET /api/movies/{id}/schedules - Showtimes for a movie
	r.Get("/api/movies/{id}/schedules", catalogHandler.ListMovieSchedules)

	// GET /api/schedules/{id} - Schedule details
	r.Get("/api/schedules/{id}", catalogHandler.GetSchedule)

	// GET /api/schedules/{id}/seats - Seat map with availability
	r.Get("/api/schedules/{id}/seats", catalogHandler.ListScheduleSeats)
}
