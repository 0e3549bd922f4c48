package usecase

import (
	"context"
	"fmt"

	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService is the read-only lookup side: movies and their
// screening schedules.
type CatalogService interface {
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error)
	GetSchedule(ctx context.Context, scheduleID string) (*response.ScheduleResponse, error)
	ListSchedulesForMovie(ctx context.Context, movieID string) ([]response.ScheduleResponse, error)
	ListSeatsForSchedule(ctx context.Context, scheduleID string) ([]response.SeatResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return movieResponses, nil
}

func (s *catalogService) GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("movie ID %s: %w", movieID, repository.ErrInvalidInput)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, repository.ErrNotFound)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *catalogService) GetSchedule(ctx context.Context, scheduleID string) (*response.ScheduleResponse, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("schedule ID %s: %w", scheduleID, repository.ErrInvalidInput)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", scheduleID, repository.ErrNotFound)
	}

	resp := response.ScheduleToResponse(schedule)
	return &resp, nil
}

func (s *catalogService) ListSchedulesForMovie(ctx context.Context, movieID string) ([]response.ScheduleResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("movie ID %s: %w", movieID, repository.ErrInvalidInput)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, repository.ErrNotFound)
	}

	schedules, err := s.repo.Schedule.FindByMovieID(ctx, id)
	if err != nil {
		s.log.Error("Failed to list schedules", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	scheduleResponses := make([]response.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		scheduleResponses[i] = response.ScheduleToResponse(schedule)
	}

	return scheduleResponses, nil
}

// ListSeatsForSchedule returns the seat map of the schedule's screen,
// statuses included, so a caller can pick seat IDs before reserving.
func (s *catalogService) ListSeatsForSchedule(ctx context.Context, scheduleID string) ([]response.SeatResponse, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("schedule ID %s: %w", scheduleID, repository.ErrInvalidInput)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", scheduleID, repository.ErrNotFound)
	}

	seats, err := s.repo.Seat.FindByScreenID(ctx, schedule.ScreenID)
	if err != nil {
		s.log.Error("Failed to list seats", zap.Error(err), zap.String("schedule_id", scheduleID))
		return nil, fmt.Errorf("list seats: %w", err)
	}

	seatResponses := make([]response.SeatResponse, len(seats))
	for i, seat := range seats {
		seatResponses[i] = response.SeatToResponse(seat)
	}

	return seatResponses, nil
}
