package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. Each fake keeps its rows in a map and
// returns copies from the Find methods so a service mutation only
// sticks when it goes through an explicit write call.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	u := *user
	f.users[user.ID] = &u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	s := *session
	f.sessions[session.Token.String()] = &s
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	if session.RevokedAt != nil || time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	s := *session
	return &s, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	session, ok := f.sessions[token]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

type fakeMovieRepo struct {
	movies map[uuid.UUID]*entity.Movie
}

func (f *fakeMovieRepo) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	movies := make([]*entity.Movie, 0, len(f.movies))
	for _, movie := range f.movies {
		m := *movie
		movies = append(movies, &m)
	}
	return movies, nil
}

func (f *fakeMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	movie, ok := f.movies[id]
	if !ok {
		return nil, nil
	}
	m := *movie
	return &m, nil
}

type fakeScreenRepo struct {
	screens map[uuid.UUID]*entity.Screen
}

func (f *fakeScreenRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error) {
	screen, ok := f.screens[id]
	if !ok {
		return nil, nil
	}
	s := *screen
	return &s, nil
}

type fakeSeatRepo struct {
	seats map[uuid.UUID]*entity.Seat
}

func (f *fakeSeatRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	seat, ok := f.seats[id]
	if !ok {
		return nil, nil
	}
	s := *seat
	return &s, nil
}

func (f *fakeSeatRepo) FindByScreenID(ctx context.Context, screenID uuid.UUID) ([]*entity.Seat, error) {
	var seats []*entity.Seat
	for _, seat := range f.seats {
		if seat.ScreenID == screenID {
			s := *seat
			seats = append(seats, &s)
		}
	}
	return seats, nil
}

type fakeScheduleRepo struct {
	schedules map[uuid.UUID]*entity.Schedule
}

func (f *fakeScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, nil
	}
	s := *schedule
	return &s, nil
}

func (f *fakeScheduleRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	for _, schedule := range f.schedules {
		if schedule.MovieID == movieID {
			s := *schedule
			schedules = append(schedules, &s)
		}
	}
	return schedules, nil
}

type fakeBookingDetailRepo struct {
	details []*entity.BookingDetail
}

func (f *fakeBookingDetailRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingDetail, error) {
	var details []*entity.BookingDetail
	for _, detail := range f.details {
		if detail.BookingID == bookingID {
			d := *detail
			details = append(details, &d)
		}
	}
	return details, nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
	details  *fakeBookingDetailRepo
	seats    *fakeSeatRepo
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	b := *booking
	f.bookings[booking.ID] = &b
	return nil
}

func (f *fakeBookingRepo) CreateWithDetails(ctx context.Context, booking *entity.Booking, details []*entity.BookingDetail, screenID uuid.UUID, capacity int) error {
	confirmed := f.sumConfirmedTickets(booking.ScheduleID)
	if confirmed+booking.TicketCount > capacity {
		return fmt.Errorf("schedule %s: %w", booking.ScheduleID, repository.ErrCapacityExceeded)
	}

	for _, detail := range details {
		seat, ok := f.seats.seats[detail.SeatID]
		if !ok || seat.ScreenID != screenID || seat.Status != entity.SeatStatusAvailable {
			return fmt.Errorf("seat %s: %w", detail.SeatID, repository.ErrCapacityExceeded)
		}
	}

	b := *booking
	f.bookings[booking.ID] = &b
	for _, detail := range details {
		d := *detail
		f.details.details = append(f.details.details, &d)
		f.seats.seats[detail.SeatID].Status = entity.SeatStatusBooked
	}
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	b := *booking
	return &b, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			b := *booking
			bookings = append(bookings, &b)
		}
	}
	return bookings, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	if _, ok := f.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	b := *booking
	f.bookings[booking.ID] = &b
	if booking.Status == entity.BookingStatusCancelled {
		f.releaseSeats(booking.ID)
	}
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return repository.ErrNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	if status == entity.BookingStatusCancelled {
		f.releaseSeats(bookingID)
	}
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	f.releaseSeats(id)
	kept := f.details.details[:0]
	for _, detail := range f.details.details {
		if detail.BookingID != id {
			kept = append(kept, detail)
		}
	}
	f.details.details = kept
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) releaseSeats(bookingID uuid.UUID) {
	for _, detail := range f.details.details {
		if detail.BookingID != bookingID {
			continue
		}
		if seat, ok := f.seats.seats[detail.SeatID]; ok && seat.Status == entity.SeatStatusBooked {
			seat.Status = entity.SeatStatusAvailable
		}
	}
}

func (f *fakeBookingRepo) sumConfirmedTickets(scheduleID uuid.UUID) int {
	total := 0
	for _, booking := range f.bookings {
		if booking.ScheduleID == scheduleID && booking.Status == entity.BookingStatusConfirmed {
			total += booking.TicketCount
		}
	}
	return total
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	p := *payment
	f.payments[payment.BookingID] = &p
	return nil
}

func (f *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	payment, ok := f.payments[bookingID]
	if !ok {
		return nil, nil
	}
	p := *payment
	return &p, nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	l := *log
	f.entries = append(f.entries, &l)
	return nil
}

func (f *fakeAuditRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.AuditLog, error) {
	var entries []*entity.AuditLog
	for _, entry := range f.entries {
		if entry.UserID == userID {
			l := *entry
			entries = append(entries, &l)
		}
	}
	return entries, nil
}

// testEnv bundles the fakes behind a *repository.Repository so
// services run against them unchanged.
type testEnv struct {
	repo     *repository.Repository
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	movies   *fakeMovieRepo
	screens  *fakeScreenRepo
	seats    *fakeSeatRepo
	scheds   *fakeScheduleRepo
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	audits   *fakeAuditRepo
}

func newTestEnv() *testEnv {
	users := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	sessions := &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
	movies := &fakeMovieRepo{movies: make(map[uuid.UUID]*entity.Movie)}
	screens := &fakeScreenRepo{screens: make(map[uuid.UUID]*entity.Screen)}
	seats := &fakeSeatRepo{seats: make(map[uuid.UUID]*entity.Seat)}
	scheds := &fakeScheduleRepo{schedules: make(map[uuid.UUID]*entity.Schedule)}
	details := &fakeBookingDetailRepo{}
	bookings := &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*entity.Booking),
		details:  details,
		seats:    seats,
	}
	payments := &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
	audits := &fakeAuditRepo{}

	return &testEnv{
		repo: &repository.Repository{
			User:          users,
			Session:       sessions,
			Movie:         movies,
			Screen:        screens,
			Seat:          seats,
			Schedule:      scheds,
			Booking:       bookings,
			BookingDetail: details,
			Payment:       payments,
			Audit:         audits,
		},
		users:    users,
		sessions: sessions,
		movies:   movies,
		screens:  screens,
		seats:    seats,
		scheds:   scheds,
		bookings: bookings,
		payments: payments,
		audits:   audits,
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		App:     utils.AppConfig{Name: "movie-booking-test", Port: "8080"},
		Session: utils.SessionConfig{ExpiryHours: 24},
		Booking: utils.BookingConfig{PricingSource: utils.PricingSourceMovie},
	}
}

func (e *testEnv) seedMovie(title string, ticketPrice float64) *entity.Movie {
	now := time.Now()
	movie := &entity.Movie{
		Base:              entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:             title,
		DurationInMinutes: 120,
		Rating:            8.0,
		ReleaseDate:       now.AddDate(0, -1, 0),
		TicketPrice:       ticketPrice,
	}
	e.movies.movies[movie.ID] = movie
	return movie
}

func (e *testEnv) seedScreen(name string, totalSeats int) *entity.Screen {
	now := time.Now()
	screen := &entity.Screen{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:       name,
		TotalSeats: totalSeats,
	}
	e.screens.screens[screen.ID] = screen
	return screen
}

func (e *testEnv) seedSeat(screenID uuid.UUID, number string) *entity.Seat {
	now := time.Now()
	seat := &entity.Seat{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ScreenID:   screenID,
		SeatNumber: number,
		SeatRow:    number[:1],
		Status:     entity.SeatStatusAvailable,
	}
	e.seats.seats[seat.ID] = seat
	return seat
}

func (e *testEnv) seedSchedule(movieID, screenID uuid.UUID, price float64) *entity.Schedule {
	now := time.Now()
	schedule := &entity.Schedule{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:  movieID,
		ScreenID: screenID,
		ShowTime: now.AddDate(0, 0, 7),
		Price:    price,
	}
	e.scheds.schedules[schedule.ID] = schedule
	return schedule
}

func (e *testEnv) seedBooking(userID, scheduleID uuid.UUID, ticketCount int, status entity.BookingStatus) *entity.Booking {
	now := time.Now()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:      userID,
		ScheduleID:  scheduleID,
		TicketCount: ticketCount,
		Status:      status,
		BookingTime: now,
	}
	e.bookings.bookings[booking.ID] = booking
	return booking
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
